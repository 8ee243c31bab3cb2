package event

// EventType 事件类型
type EventType string

const (
	// ViewportResized 视口尺寸变化，Data 为 Size
	ViewportResized EventType = "ViewportResized"
	// PointerMoved 指针移动（表面坐标），Data 为 Point
	PointerMoved EventType = "PointerMoved"
	// ThemeChanged 明暗主题切换，Data 为 config.Theme
	ThemeChanged EventType = "ThemeChanged"
)

// Size 视口尺寸
type Size struct {
	W, H int
}

// Point 指针位置
type Point struct {
	X, Y float64
}

// Event 事件
type Event struct {
	Type EventType
	Data interface{}
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 让普通函数满足 Listener
//
// 函数值不可比较，需要退订的订阅者应使用指针类型实现 Listener。
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
//
// 仅在单个 goroutine 中使用：宿主在两帧之间分发输入事件，不加锁。
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe 退订事件，订阅者不存在时忽略
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, l := range listeners {
		if l == listener {
			// 复制而非原地删除，分发中途退订不会打乱正在遍历的切片
			next := make([]Listener, 0, len(listeners)-1)
			next = append(next, listeners[:i]...)
			next = append(next, listeners[i+1:]...)
			if len(next) == 0 {
				delete(d.listeners, eventType)
			} else {
				d.listeners[eventType] = next
			}
			return
		}
	}
}

// Dispatch 将事件发送给所有订阅者
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// ListenerCount 返回某类事件的订阅者数量
func (d *Dispatcher) ListenerCount(eventType EventType) int {
	return len(d.listeners[eventType])
}
