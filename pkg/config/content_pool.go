package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LabelStyle 文本标签的视觉风格
type LabelStyle string

const (
	// LabelStyleCode 命令/代码片段：等宽字体，低调配色
	LabelStyleCode LabelStyle = "code"
	// LabelStyleTech 技术栈名称：强调色
	LabelStyleTech LabelStyle = "tech"
)

// Label 文本标签内容
type Label struct {
	Text  string     `yaml:"text"`
	Style LabelStyle `yaml:"style"`
}

// ContentPool 漂浮元素的内容池
//
// Icons 为图标标识符（见 internal/glyph），Labels 为旧版文本标签。
// 默认内容池只包含图标；标签路径保留用于文本变体。
type ContentPool struct {
	Icons  []string `yaml:"icons"`
	Labels []Label  `yaml:"labels"`
}

// Len 返回内容条目总数
func (p ContentPool) Len() int {
	return len(p.Icons) + len(p.Labels)
}

// DefaultContentPool 返回默认（仅图标）内容池
func DefaultContentPool() ContentPool {
	return ContentPool{
		Icons: []string{
			"go", "rust", "python", "typescript", "javascript", "react",
			"docker", "kubernetes", "git", "github", "linux", "nodejs",
			"terraform", "postgresql", "redis", "graphql",
		},
	}
}

// LegacyLabelPool 返回旧版文本标签内容池（命令片段 + 技术栈）
func LegacyLabelPool() ContentPool {
	codeSnippets := []string{
		"// TODO: Build something amazing",
		`git commit -am "feat: new feature"`,
		"npm run build",
		"docker-compose up",
		"kubectl apply -f deployment.yaml",
		"cargo test --release",
		"go build -o main",
		"python manage.py migrate",
		"terraform apply",
		"ansible-playbook deploy.yml",
		"make test",
		"CI/CD Pipeline",
		"microservices",
		"serverless",
		"GraphQL",
		"REST API",
		"WebSocket",
		"gRPC",
	}
	techStack := []string{
		"TypeScript", "Rust", "Go", "Python",
		"React", "Next.js", "Node.js", "PostgreSQL",
		"MongoDB", "Redis", "Docker", "Kubernetes",
		"AWS", "GCP", "Azure", "Terraform",
		"GitHub Actions", "Jenkins", "Nginx", "GraphQL",
	}

	pool := ContentPool{Labels: make([]Label, 0, len(codeSnippets)+len(techStack))}
	for _, s := range codeSnippets {
		pool.Labels = append(pool.Labels, Label{Text: s, Style: LabelStyleCode})
	}
	for _, s := range techStack {
		pool.Labels = append(pool.Labels, Label{Text: s, Style: LabelStyleTech})
	}
	return pool
}

// Merge 合并两个内容池，去除重复的图标和标签
func (p ContentPool) Merge(other ContentPool) ContentPool {
	out := ContentPool{}
	seenIcons := make(map[string]bool)
	for _, id := range append(append([]string{}, p.Icons...), other.Icons...) {
		if !seenIcons[id] {
			seenIcons[id] = true
			out.Icons = append(out.Icons, id)
		}
	}
	seenLabels := make(map[Label]bool)
	for _, l := range append(append([]Label{}, p.Labels...), other.Labels...) {
		if !seenLabels[l] {
			seenLabels[l] = true
			out.Labels = append(out.Labels, l)
		}
	}
	return out
}

// Validate 验证内容池
func (p *ContentPool) Validate() error {
	if p.Len() == 0 {
		return fmt.Errorf("content pool is empty")
	}
	for i, id := range p.Icons {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("icons[%d] is empty", i)
		}
	}
	for i, l := range p.Labels {
		if strings.TrimSpace(l.Text) == "" {
			return fmt.Errorf("labels[%d].text is empty", i)
		}
		switch l.Style {
		case LabelStyleCode, LabelStyleTech:
		case "":
			p.Labels[i].Style = LabelStyleTech
		default:
			return fmt.Errorf("labels[%d].style %q is not one of code, tech", i, l.Style)
		}
	}
	return nil
}

// ParseContentPool 从 YAML 数据解析内容池
func ParseContentPool(data []byte) (ContentPool, error) {
	var pool ContentPool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return ContentPool{}, fmt.Errorf("failed to parse content pool: %w", err)
	}
	if err := pool.Validate(); err != nil {
		return ContentPool{}, fmt.Errorf("invalid content pool: %w", err)
	}
	return pool, nil
}

// LoadContentPool 从文件加载内容池
func LoadContentPool(path string) (ContentPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContentPool{}, fmt.Errorf("failed to read content pool %s: %w", path, err)
	}
	pool, err := ParseContentPool(data)
	if err != nil {
		return ContentPool{}, fmt.Errorf("%s: %w", path, err)
	}
	return pool, nil
}
