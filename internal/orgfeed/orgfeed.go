// Package orgfeed 从 GitHub 组织公开接口读取仓库与成员，转换为漂浮标签内容。
//
// 只做一次无认证 GET，不重试；非 2xx 响应视为错误。
package orgfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/decker502/driftfield/pkg/config"
)

// DefaultBaseURL GitHub REST API 地址
const DefaultBaseURL = "https://api.github.com"

// Repo 组织仓库（只保留用到的字段）
type Repo struct {
	Name            string `json:"name"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	Fork            bool   `json:"fork"`
	Archived        bool   `json:"archived"`
}

// Member 组织成员
type Member struct {
	Login string `json:"login"`
}

// Client 组织数据客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 替换 API 地址（测试中指向 httptest 服务器）
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient 使用自定义 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient 创建客户端，默认超时 10 秒
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "driftfield",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repos 返回组织最近更新的仓库（最多 100 个）
func (c *Client) Repos(ctx context.Context, org string) ([]Repo, error) {
	var repos []Repo
	path := "/orgs/" + url.PathEscape(org) + "/repos?sort=updated&per_page=100"
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repos of %s: %w", org, err)
	}
	return repos, nil
}

// Members 返回组织公开成员
func (c *Client) Members(ctx context.Context, org string) ([]Member, error) {
	var members []Member
	path := "/orgs/" + url.PathEscape(org) + "/members"
	if err := c.getJSON(ctx, path, &members); err != nil {
		return nil, fmt.Errorf("failed to fetch members of %s: %w", org, err)
	}
	return members, nil
}

// StatusError 非 2xx 响应
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 读完响应体以便连接复用
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: u}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Labels 把仓库转换为标签：仓库名为 code 风格，语言去重后为 tech 风格
//
// 跳过 fork 与已归档仓库；语言按名称排序以保证结果稳定。
func Labels(repos []Repo) []config.Label {
	var labels []config.Label
	langs := make(map[string]bool)
	for _, r := range repos {
		if r.Fork || r.Archived || strings.TrimSpace(r.Name) == "" {
			continue
		}
		labels = append(labels, config.Label{Text: r.Name, Style: config.LabelStyleCode})
		if lang := strings.TrimSpace(r.Language); lang != "" {
			langs[lang] = true
		}
	}

	sorted := make([]string, 0, len(langs))
	for l := range langs {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)
	for _, l := range sorted {
		labels = append(labels, config.Label{Text: l, Style: config.LabelStyleTech})
	}
	return labels
}

// MemberLabels 把成员登录名转换为 code 风格标签（形如 @login）
func MemberLabels(members []Member) []config.Label {
	labels := make([]config.Label, 0, len(members))
	for _, m := range members {
		if m.Login == "" {
			continue
		}
		labels = append(labels, config.Label{Text: "@" + m.Login, Style: config.LabelStyleCode})
	}
	return labels
}

// Pool 拉取组织仓库与成员并生成标签内容池
//
// 成员接口失败不影响仓库结果，只记录日志。
func (c *Client) Pool(ctx context.Context, org string) (config.ContentPool, error) {
	repos, err := c.Repos(ctx, org)
	if err != nil {
		return config.ContentPool{}, err
	}
	pool := config.ContentPool{Labels: Labels(repos)}

	members, err := c.Members(ctx, org)
	if err != nil {
		log.Printf("[OrgFeed] Warning: %v", err)
	} else {
		pool.Labels = append(pool.Labels, MemberLabels(members)...)
	}

	log.Printf("[OrgFeed] %s: %d repos, %d members -> %d labels", org, len(repos), len(members), len(pool.Labels))
	return pool, nil
}
