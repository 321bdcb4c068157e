package invoke

// Observer receives invocation lifecycle callbacks. Calls happen on the
// goroutine running Invoke.
type Observer interface {
	OnInvocationStart(id string, argv []string)
	OnInvocationEnd(result Result)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

// OnInvocationStart implements Observer.
func (NoopObserver) OnInvocationStart(string, []string) {}

// OnInvocationEnd implements Observer.
func (NoopObserver) OnInvocationEnd(Result) {}

// Observers fans callbacks out in order.
type Observers []Observer

// OnInvocationStart implements Observer.
func (o Observers) OnInvocationStart(id string, argv []string) {
	for _, observer := range o {
		if observer != nil {
			observer.OnInvocationStart(id, argv)
		}
	}
}

// OnInvocationEnd implements Observer.
func (o Observers) OnInvocationEnd(result Result) {
	for _, observer := range o {
		if observer != nil {
			observer.OnInvocationEnd(result)
		}
	}
}
