package pullrequest

import (
	"context"
	"fmt"

	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/tidwall/gjson"
)

const MockHost = "https://bitbucket.example.com"

// MockCall is one request seen by MockAPI.
type MockCall struct {
	Method string
	URL    string
	Body   string
}

// MockResponse is served for a "METHOD url" key. Responses queue up when
// the same key is called more than once.
type MockResponse struct {
	Status int
	Body   string
	Err    error
}

type MockAPI struct {
	Responses map[string][]MockResponse
	Pages     map[string][]string
	Calls     []MockCall
}

func NewMockAPI() *MockAPI {
	return &MockAPI{
		Responses: map[string][]MockResponse{},
		Pages:     map[string][]string{},
	}
}

func (m *MockAPI) On(method, url string, status int, body string) *MockAPI {
	key := method + " " + url
	m.Responses[key] = append(m.Responses[key], MockResponse{Status: status, Body: body})
	return m
}

func (m *MockAPI) OnError(method, url string, err error) *MockAPI {
	key := method + " " + url
	m.Responses[key] = append(m.Responses[key], MockResponse{Err: err})
	return m
}

func (m *MockAPI) Host() string { return MockHost }

func (m *MockAPI) do(method, url, body string) (*bitbucket.Response, error) {
	m.Calls = append(m.Calls, MockCall{Method: method, URL: url, Body: body})

	key := method + " " + url
	queue, ok := m.Responses[key]
	if !ok || len(queue) == 0 {
		return nil, fmt.Errorf("unexpected request %s", key)
	}

	resp := queue[0]
	if len(queue) > 1 {
		m.Responses[key] = queue[1:]
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	return &bitbucket.Response{
		StatusCode: resp.Status,
		Body:       gjson.Parse(resp.Body),
		Raw:        []byte(resp.Body),
	}, nil
}

func (m *MockAPI) Get(_ context.Context, url string) (*bitbucket.Response, error) {
	return m.do("GET", url, "")
}

func (m *MockAPI) Post(_ context.Context, url, body string) (*bitbucket.Response, error) {
	return m.do("POST", url, body)
}

func (m *MockAPI) Put(_ context.Context, url, body string) (*bitbucket.Response, error) {
	return m.do("PUT", url, body)
}

func (m *MockAPI) Delete(_ context.Context, url, body string) (*bitbucket.Response, error) {
	return m.do("DELETE", url, body)
}

func (m *MockAPI) Paginate(_ context.Context, url string) ([]gjson.Result, error) {
	m.Calls = append(m.Calls, MockCall{Method: "GET", URL: url})

	values, ok := m.Pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected paged request %s", url)
	}

	results := make([]gjson.Result, 0, len(values))
	for _, v := range values {
		results = append(results, gjson.Parse(v))
	}

	return results, nil
}

// CallsTo counts the requests made with the given method.
func (m *MockAPI) CallsTo(method string) int {
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}

	return n
}

type MockGit struct {
	ErrorValue   error
	Branch       string
	Repo         *gitutils.RepoRef
	Title        string
	Description  string
	RebaseErr    error
	RebaseTarget string
}

func (g *MockGit) CurrentBranch() (string, error) {
	return g.Branch, g.ErrorValue
}

func (g *MockGit) BaseRepo() (*gitutils.RepoRef, error) {
	return g.Repo, g.ErrorValue
}

func (g *MockGit) TitleAndDescription() (string, string, error) {
	return g.Title, g.Description, g.ErrorValue
}

func (g *MockGit) Rebase(_ context.Context, target string) error {
	g.RebaseTarget = target
	return g.RebaseErr
}

// MockConfirmer answers prompts from Answers in order, then with Default.
type MockConfirmer struct {
	Answers  []bool
	Default  bool
	Err      error
	Messages []string
}

func (c *MockConfirmer) Confirm(msg string) (bool, error) {
	c.Messages = append(c.Messages, msg)
	if c.Err != nil {
		return false, c.Err
	}
	if len(c.Answers) == 0 {
		return c.Default, nil
	}

	a := c.Answers[0]
	c.Answers = c.Answers[1:]

	return a, nil
}

type MockProgress struct {
	Started []string
	Errors  []error
}

func (p *MockProgress) Start(msg string) {
	p.Started = append(p.Started, msg)
}

func (p *MockProgress) Done(err error) {
	p.Errors = append(p.Errors, err)
}
