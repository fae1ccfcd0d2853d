package hxcmp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
)

// TestResult holds the outcome of rendering a component or running an
// action in a test.
type TestResult struct {
	HTML              string
	StatusCode        int
	Headers           http.Header
	TriggeredEvents   []string
	AfterSettleEvents []string
}

// TestRender runs Hydrate and Render on comp without any HTTP machinery.
//
//	result, err := hxcmp.TestRender(comp, props)
//	if !result.HTMLContains("2 items left") { ... }
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an HTMX request for actionURL through comp and records
// the response.
//
//	result, err := hxcmp.TestAction(comp, app.Call("add", props).URL(), http.MethodPost,
//	    map[string]string{"text": "Buy milk"})
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(method, actionURL).WithFormValues(formData).Execute(comp)
}

// TestCall sends a through comp the way HTMX would: the action's hx-vals
// are sent as form values alongside form, with hx-vals taking precedence.
//
//	result, err := hxcmp.TestCall(app, app.FilterAction(todo.FilterActive), nil)
func TestCall(comp HXComponent, a *Action, form map[string]string) (*TestResult, error) {
	return NewTestRequest(a.Method(), a.URL()).
		WithFormValues(form).
		WithFormValues(a.formVals()).
		Execute(comp)
}

// HTMLContains checks if the HTML contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains every substring.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent reports whether event was sent in HX-Trigger.
func (r *TestResult) HasEvent(event string) bool {
	return containsString(r.TriggeredEvents, event)
}

// HasAfterSettleEvent reports whether event was sent in
// HX-Trigger-After-Settle.
func (r *TestResult) HasAfterSettleEvent(event string) bool {
	return containsString(r.AfterSettleEvents, event)
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if header key has value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// TestRequestBuilder builds a request for Execute.
//
//	result, err := hxcmp.NewTestRequest(http.MethodPost, url).
//	    WithFormData("text", "Buy milk").
//	    Execute(comp)
type TestRequestBuilder struct {
	method   string
	url      string
	formData map[string]string
	headers  map[string]string
	ctx      context.Context
}

// NewTestRequest creates a test request builder. HX-Request is set by
// default.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string]string),
		headers:  map[string]string{"HX-Request": "true"},
		ctx:      context.Background(),
	}
}

// WithFormData adds one form value.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData[key] = value
	return b
}

// WithFormValues adds several form values.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData[k] = v
	}
	return b
}

// WithHeader sets a request header. An empty value removes it.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	if value == "" {
		delete(b.headers, key)
		return b
	}
	b.headers[key] = value
	return b
}

// WithContext sets the request context.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Build returns the *http.Request without executing it.
func (b *TestRequestBuilder) Build() *http.Request {
	form := url.Values{}
	for k, v := range b.formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(b.method, b.url, strings.NewReader(form.Encode()))
	req = req.WithContext(b.ctx)
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Execute runs the request against comp.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	return b.ExecuteHandler(http.HandlerFunc(comp.HXServeHTTP))
}

// ExecuteHandler runs the request against any handler, such as
// Registry.Handler.
func (b *TestRequestBuilder) ExecuteHandler(h http.Handler) (*TestResult, error) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, b.Build())

	return &TestResult{
		HTML:              rec.Body.String(),
		StatusCode:        rec.Code,
		Headers:           rec.Header(),
		TriggeredEvents:   parseTriggerHeader(rec.Header().Get("HX-Trigger")),
		AfterSettleEvents: parseTriggerHeader(rec.Header().Get("HX-Trigger-After-Settle")),
	}, nil
}

// parseTriggerHeader returns the event names in an HX-Trigger value, which
// is either a comma-separated list or a JSON object keyed by event.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &obj); err != nil {
			return nil
		}
		events := make([]string, 0, len(obj))
		for k := range obj {
			events = append(events, k)
		}
		sort.Strings(events)
		return events
	}

	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// formVals renders the action's hx-vals as the string form values a
// browser would submit.
func (a *Action) formVals() map[string]string {
	if len(a.vals) == 0 {
		return nil
	}
	out := make(map[string]string, len(a.vals))
	for k, v := range a.vals {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
