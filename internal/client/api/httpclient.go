package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/nearby/internal/client/models"
	"github.com/dmitrijs2005/nearby/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the Nearby backend. A session token is
// obtained from the TokenSource on every authenticated request; requests made
// without a token fail with ErrUnauthorized before any network activity.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient constructs a client for the API rooted at baseURL
// (e.g. "http://localhost:3000/api").
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) authenticatedGet(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *HTTPClient) authenticatedPost(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, auth bool) error {
	var token string
	if auth {
		t, ok := c.tokens.Token()
		if !ok {
			return ErrUnauthorized
		}
		token = t
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrRemote, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err := mapStatus(resp.StatusCode, data)
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// mapStatus converts an HTTP error status to the sentinel taxonomy, carrying
// the server-provided message through on ErrRemote.
func mapStatus(code int, body []byte) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	msg := errorMessage(body)
	if msg == "" {
		msg = http.StatusText(code)
	}
	return fmt.Errorf("%w: %s", ErrRemote, msg)
}

// errorMessage digs the human-readable message out of an error payload; the
// backend variously uses "message" and "error".
func errorMessage(body []byte) string {
	var p struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	if p.Message != "" {
		return p.Message
	}
	return p.Error
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return "", err
	}
	token := resp.Data.Token
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return "", fmt.Errorf("%w: login response carries no token", ErrMalformedResponse)
	}
	return token, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp struct {
		Data wireUser `json:"data"`
		User wireUser `json:"user"`
		wireUser
	}
	if err := c.authenticatedGet(ctx, "/user/me", &resp); err != nil {
		return nil, err
	}
	for _, cand := range []*wireUser{&resp.Data, &resp.User, &resp.wireUser} {
		if u := cand.toModel(); u != nil {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: no user in /user/me response", ErrMalformedResponse)
}

func (c *HTTPClient) Feed(ctx context.Context) ([]*models.Post, []*models.User, error) {
	var resp struct {
		Posts []*wirePost `json:"posts"`
	}
	if err := c.authenticatedGet(ctx, "/post", &resp); err != nil {
		return nil, nil, err
	}
	var posts []*models.Post
	var authors []*models.User
	for _, wp := range resp.Posts {
		p := wp.toModel()
		if p == nil {
			continue
		}
		posts = append(posts, p)
		if a := wp.User.toModel(); a != nil {
			authors = append(authors, a)
		}
	}
	return posts, authors, nil
}

func (c *HTTPClient) UserProfile(ctx context.Context, userID string) (*models.User, error) {
	var resp struct {
		User wireUser `json:"user"`
		Data wireUser `json:"data"`
		wireUser
	}
	if err := c.authenticatedGet(ctx, "/user/profile/"+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}
	for _, cand := range []*wireUser{&resp.User, &resp.Data, &resp.wireUser} {
		if u := cand.toModel(); u != nil {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: no user in profile response", ErrMalformedResponse)
}

func (c *HTTPClient) UserPosts(ctx context.Context, userID string) ([]*models.Post, error) {
	var resp struct {
		Data []*wirePost `json:"data"`
	}
	if err := c.authenticatedGet(ctx, "/post/user/"+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}
	var posts []*models.Post
	for _, wp := range resp.Data {
		if p := wp.toModel(); p != nil {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (c *HTTPClient) Comments(ctx context.Context, postID string) ([]*models.Comment, error) {
	var resp struct {
		Data struct {
			Comments json.RawMessage `json:"comments"`
		} `json:"data"`
	}
	if err := c.authenticatedGet(ctx, "/comments/"+url.PathEscape(postID), &resp); err != nil {
		return nil, err
	}
	var list []*wireComment
	if len(resp.Data.Comments) == 0 {
		return nil, fmt.Errorf("%w: comments list missing", ErrMalformedResponse)
	}
	if err := json.Unmarshal(resp.Data.Comments, &list); err != nil {
		return nil, fmt.Errorf("%w: comments is not a list", ErrMalformedResponse)
	}
	var roots []*models.Comment
	for _, wc := range list {
		if m := wc.toModel(postID); m != nil {
			roots = append(roots, m)
		}
	}
	return roots, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, postID, parentID, content string) (*models.Comment, error) {
	body := struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parentCommentId"`
	}{Content: content}
	if parentID != "" {
		body.ParentID = &parentID
	}

	var resp struct {
		Data    json.RawMessage `json:"data"`
		Comment json.RawMessage `json:"comment"`
	}
	if err := c.authenticatedPost(ctx, "/comments/post/"+url.PathEscape(postID), body, &resp); err != nil {
		return nil, err
	}

	// The backend has shipped at least three shapes for this response: the
	// comment under "data", under "comment", or as the head of
	// "data.comments". Anything else is treated as malformed and the caller
	// refetches the tree.
	if m := decodeComment(resp.Data, postID); m != nil {
		return m, nil
	}
	if m := decodeComment(resp.Comment, postID); m != nil {
		return m, nil
	}
	if len(resp.Data) > 0 {
		var nested struct {
			Comments []*wireComment `json:"comments"`
		}
		if err := json.Unmarshal(resp.Data, &nested); err == nil && len(nested.Comments) > 0 {
			if m := nested.Comments[0].toModel(postID); m != nil {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: created comment not recognizable", ErrMalformedResponse)
}

func decodeComment(raw json.RawMessage, postID string) *models.Comment {
	if len(raw) == 0 {
		return nil
	}
	var wc wireComment
	if err := json.Unmarshal(raw, &wc); err != nil {
		return nil
	}
	return wc.toModel(postID)
}

func (c *HTTPClient) AddContact(ctx context.Context, userID string) error {
	body := map[string]string{"grantedTo": userID}
	return c.authenticatedPost(ctx, "/contacts/add", body, nil)
}

func (c *HTTPClient) Contacts(ctx context.Context) ([]*models.User, error) {
	var resp struct {
		Contacts []struct {
			GrantedTo wireUser `json:"grantedTo"`
		} `json:"contacts"`
	}
	if err := c.authenticatedGet(ctx, "/contacts/granted", &resp); err != nil {
		return nil, err
	}
	var users []*models.User
	for _, entry := range resp.Contacts {
		if u := entry.GrantedTo.toModel(); u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}
