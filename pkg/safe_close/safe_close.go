// Package safe_close 提供多组件协同关闭能力
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的安全关闭
// 组件通过 Attach 注册，收到关闭信号后各自清理并调用 done
type SafeClose struct {
	mu        sync.Mutex
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeCh   chan struct{}
	err       error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach 注册一个受管理的后台执行体
// f 必须在退出前调用 done，并监听 closeSignal 以响应关闭
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeCh)
}

// SendCloseSignal 发出关闭信号，可附带导致关闭的错误
// 多次调用只有第一次生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeCh
}

// WaitClosed 阻塞等待所有已注册组件退出
// 返回触发关闭的错误（正常关闭为 nil）
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
