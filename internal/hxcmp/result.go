package hxcmp

// Result[P] is returned from action handlers to control rendering and
// response headers.
//
//	// re-render with current state
//	return hxcmp.OK(props)
//
//	// tell listeners something changed
//	return hxcmp.OK(props).Trigger("todos:changed")
//
//	// run client code once the swap has settled
//	return hxcmp.OK(props).AfterSettle("todo:edit-focus", map[string]any{"id": id})
//
// Errors go through the registry's OnError via Err.
type Result[P any] struct {
	props           P
	err             error
	trigger         string
	triggerData     map[string]any
	afterSettle     string
	afterSettleData map[string]any
	headers         map[string]string
}

// OK creates a success result that renders with props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates an error result handled by the registry's OnError.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Trigger emits event via the HX-Trigger header. Optional data becomes the
// event's detail on the client.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// AfterSettle emits event via HX-Trigger-After-Settle, which HTMX fires once
// the swapped content has settled in the DOM.
func (r Result[P]) AfterSettle(event string, data ...map[string]any) Result[P] {
	r.afterSettle = event
	if len(data) > 0 {
		r.afterSettleData = data[0]
	}
	return r
}

// PushURL updates the browser URL via HX-Push-Url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// GetProps returns the props to render with.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error, if any.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetTrigger returns the HX-Trigger event name.
func (r Result[P]) GetTrigger() string {
	return r.trigger
}

// GetTriggerData returns the HX-Trigger event data.
func (r Result[P]) GetTriggerData() map[string]any {
	return r.triggerData
}

// GetAfterSettle returns the HX-Trigger-After-Settle event name.
func (r Result[P]) GetAfterSettle() string {
	return r.afterSettle
}

// GetAfterSettleData returns the after-settle event data.
func (r Result[P]) GetAfterSettleData() map[string]any {
	return r.afterSettleData
}

// GetHeaders returns the extra response headers.
func (r Result[P]) GetHeaders() map[string]string {
	return r.headers
}
