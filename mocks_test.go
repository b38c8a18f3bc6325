package authfront_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/goliatone/go-router"

	authfront "github.com/hsapp/go-authfront"
)

// stubSession is a fixed SessionReader for guard tests.
type stubSession struct {
	authenticated bool
	user          *authfront.User
	token         string
}

func (s stubSession) IsAuthenticated() bool {
	return s.authenticated
}

func (s stubSession) Snapshot() authfront.SessionSnapshot {
	return authfront.SessionSnapshot{
		User:            s.user,
		AccessToken:     s.token,
		IsAuthenticated: s.authenticated,
	}
}

// fakeContext is a stateful router.Context for middleware and controller
// tests. It records renders, redirects, and cookie writes instead of
// performing them.
type fakeContext struct {
	ctx         context.Context
	path        string
	method      string
	originalURL string
	referer     string

	// bindSource is marshalled and unmarshalled into the Bind destination.
	bindSource any
	bindErr    error

	cookies    map[string]string
	setCookies []*router.Cookie
	locals     map[any]any
	values     map[string]any
	headers    map[string]string
	query      map[string]string

	status         int
	renderedView   string
	renderedBind   any
	redirectedTo   string
	redirectStatus int
	sent           string
	nextCalled     bool
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		ctx:     context.Background(),
		cookies: map[string]string{},
		locals:  map[any]any{},
		values:  map[string]any{},
		headers: map[string]string{},
		query:   map[string]string{},
	}
}

func (c *fakeContext) Next() error {
	c.nextCalled = true
	return nil
}

func (c *fakeContext) Context() context.Context {
	return c.ctx
}

func (c *fakeContext) SetContext(ctx context.Context) {
	c.ctx = ctx
}

func (c *fakeContext) Path() string {
	return c.path
}

func (c *fakeContext) Method() string {
	return c.method
}

func (c *fakeContext) Body() []byte {
	data, _ := json.Marshal(c.bindSource)
	return data
}

func (c *fakeContext) Status(code int) router.Context {
	c.status = code
	return c
}

func (c *fakeContext) SendString(s string) error {
	c.sent = s
	return nil
}

func (c *fakeContext) Send(b []byte) error {
	c.sent = string(b)
	return nil
}

func (c *fakeContext) JSON(code int, val any) error {
	c.status = code
	c.renderedBind = val
	return nil
}

func (c *fakeContext) NoContent(code int) error {
	c.status = code
	return nil
}

func (c *fakeContext) Render(name string, bind any, layout ...string) error {
	c.renderedView = name
	c.renderedBind = bind
	return nil
}

func (c *fakeContext) Redirect(path string, status ...int) error {
	c.redirectedTo = path
	if len(status) > 0 {
		c.redirectStatus = status[0]
	}
	return nil
}

func (c *fakeContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	c.redirectedTo = name
	if len(status) > 0 {
		c.redirectStatus = status[0]
	}
	return nil
}

func (c *fakeContext) RedirectBack(fallback string, status ...int) error {
	c.redirectedTo = fallback
	if len(status) > 0 {
		c.redirectStatus = status[0]
	}
	return nil
}

func (c *fakeContext) SetHeader(key, val string) router.Context {
	c.headers[key] = val
	return c
}

func (c *fakeContext) Header(key string) string {
	return c.headers[key]
}

func (c *fakeContext) Get(key string, defaultValue any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return defaultValue
}

func (c *fakeContext) GetBool(key string, defaultValue bool) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return defaultValue
}

func (c *fakeContext) GetInt(key string, def int) int {
	if v, ok := c.values[key].(int); ok {
		return v
	}
	return def
}

func (c *fakeContext) GetString(key string, defaultValue string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return defaultValue
}

func (c *fakeContext) Set(key string, val any) {
	c.values[key] = val
}

func (c *fakeContext) Bind(i any) error {
	if c.bindErr != nil {
		return c.bindErr
	}
	if c.bindSource == nil {
		return nil
	}
	data, err := json.Marshal(c.bindSource)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, i)
}

func (c *fakeContext) BindJSON(i any) error {
	return c.Bind(i)
}

func (c *fakeContext) BindXML(i any) error {
	return c.Bind(i)
}

func (c *fakeContext) BindQuery(i any) error {
	return c.Bind(i)
}

func (c *fakeContext) CookieParser(i any) error {
	return nil
}

func (c *fakeContext) Cookie(cookie *router.Cookie) {
	c.setCookies = append(c.setCookies, cookie)
	if cookie.Value == "" {
		delete(c.cookies, cookie.Name)
		return
	}
	c.cookies[cookie.Name] = cookie.Value
}

func (c *fakeContext) Cookies(key string, defaultValue ...string) string {
	if v, ok := c.cookies[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *fakeContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *fakeContext) ParamsInt(key string, defaultValue int) int {
	return defaultValue
}

func (c *fakeContext) Query(key string, defaultValue ...string) string {
	if v, ok := c.query[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *fakeContext) QueryValues(key string) []string {
	if v, ok := c.query[key]; ok {
		return []string{v}
	}
	return nil
}

func (c *fakeContext) QueryInt(key string, defaultValue int) int {
	return defaultValue
}

func (c *fakeContext) Queries() map[string]string {
	return c.query
}

func (c *fakeContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		c.locals[key] = value[0]
		return nil
	}
	return c.locals[key]
}

func (c *fakeContext) OriginalURL() string {
	return c.originalURL
}

func (c *fakeContext) OnNext(callback func() error) {
}

func (c *fakeContext) Referer() string {
	return c.referer
}

func (c *fakeContext) FormFile(key string) (*multipart.FileHeader, error) {
	return nil, nil
}

func (c *fakeContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (c *fakeContext) IP() string {
	return ""
}

func (c *fakeContext) LocalsMerge(key any, value map[string]any) map[string]any {
	existing, _ := c.locals[key].(map[string]any)
	if existing == nil {
		existing = map[string]any{}
	}
	for k, v := range value {
		existing[k] = v
	}
	c.locals[key] = existing
	return existing
}

func (c *fakeContext) RouteName() string {
	return ""
}

func (c *fakeContext) RouteParams() map[string]string {
	return map[string]string{}
}

func (c *fakeContext) SendStatus(code int) error {
	c.status = code
	return nil
}

func (c *fakeContext) SendStream(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.sent = string(b)
	return nil
}
