package safe_close

import (
	"errors"
	"testing"
	"time"
)

func TestSafeClose_WaitClosed(t *testing.T) {
	sc := NewSafeClose()

	stopped := make(chan struct{})
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		close(stopped)
	})

	sc.SendCloseSignal(nil)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("attached worker did not receive close signal")
	}

	if err := sc.WaitClosed(); err != nil {
		t.Errorf("WaitClosed() = %v, want nil", err)
	}
}

func TestSafeClose_FirstErrorWins(t *testing.T) {
	sc := NewSafeClose()

	first := errors.New("first")
	sc.SendCloseSignal(first)
	sc.SendCloseSignal(errors.New("second"))

	if err := sc.WaitClosed(); !errors.Is(err, first) {
		t.Errorf("WaitClosed() = %v, want %v", err, first)
	}
}
