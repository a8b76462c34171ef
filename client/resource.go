package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bitmark-inc/community-aid/schema"
)

// Resource is the rest collection of one listing type, e.g. /api/donations
type Resource[T any, PT schema.Record[T]] struct {
	c    *Client
	path string
}

func NewResource[T any, PT schema.Record[T]](c *Client, path string) *Resource[T, PT] {
	return &Resource[T, PT]{c: c, path: path}
}

// decode reads one record. Backends that expose the identifier as `_id`
// are mapped onto the listing id.
func (r *Resource[T, PT]) decode(data json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}

	var backend struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &backend); err == nil && backend.ID != "" {
		PT(&v).Common().ID = backend.ID
	}
	return v, nil
}

// payload is the wire form of a submission. The id and creation time are
// assigned by the backend and never sent, so backends fill in their own
// defaults. The display date is only sent on update and only when set.
func (r *Resource[T, PT]) payload(v T, keepPostedDate bool) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	delete(fields, "id")
	delete(fields, "createdAt")
	if !keepPostedDate || PT(&v).Common().PostedDate == "" {
		delete(fields, "postedDate")
	}
	return fields, nil
}

func (r *Resource[T, PT]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns the whole collection in the order the backend keeps it
func (r *Resource[T, PT]) List(ctx context.Context) ([]T, error) {
	var raw []json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, nil, &raw); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raw))
	for _, data := range raw {
		v, err := r.decode(data)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *Resource[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var raw json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &raw); err != nil {
		var zero T
		return zero, err
	}
	return r.decode(raw)
}

func (r *Resource[T, PT]) Create(ctx context.Context, v T) (T, error) {
	var raw json.RawMessage
	body, err := r.payload(v, false)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, body, &raw); err != nil {
		var zero T
		return zero, err
	}
	return r.decode(raw)
}

// Update replaces the record with the given id
func (r *Resource[T, PT]) Update(ctx context.Context, id string, v T) (T, error) {
	var raw json.RawMessage
	body, err := r.payload(v, true)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id), nil, body, &raw); err != nil {
		var zero T
		return zero, err
	}
	return r.decode(raw)
}

func (r *Resource[T, PT]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// Donations is the donation collection of the service
func Donations(c *Client) *Resource[schema.Donation, *schema.Donation] {
	return NewResource[schema.Donation](c, "/api/donations")
}

// Requests is the help request collection of the service
func Requests(c *Client) *Resource[schema.Request, *schema.Request] {
	return NewResource[schema.Request](c, "/api/requests")
}
