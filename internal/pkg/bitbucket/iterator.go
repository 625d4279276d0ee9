package bitbucket

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const pageLimit = 100

// pageIterator walks a paged Bitbucket Server collection using the
// start/limit query parameters and the isLastPage/nextPageStart fields.
type pageIterator[T any] struct {
	Client     *Client
	RequestURL string
	Parse      func(value gjson.Result) (T, error)
	hasNext    bool
	start      int64
}

type newPageIteratorOptions[T any] struct {
	Client     *Client
	RequestURL string
	Parse      func(value gjson.Result) (T, error)
}

func newPageIterator[T any](options *newPageIteratorOptions[T]) *pageIterator[T] {
	return &pageIterator[T]{
		Client:     options.Client,
		RequestURL: options.RequestURL,
		Parse:      options.Parse,
		hasNext:    true,
	}
}

func (i *pageIterator[T]) HasNext() bool {
	return i.hasNext
}

func (i *pageIterator[T]) pageURL() string {
	sep := "?"
	if strings.Contains(i.RequestURL, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%sstart=%d&limit=%d", i.RequestURL, sep, i.start, pageLimit)
}

func (i *pageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if !i.hasNext {
		return nil, nil
	}

	r, err := i.Client.Get(ctx, i.pageURL())
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, HTTPError(r)
	}

	next := r.Body.Get("nextPageStart")
	if r.Body.Get("isLastPage").Bool() || !next.Exists() {
		i.hasNext = false
	} else {
		i.start = next.Int()
	}

	return i.parse(r.Body.Get("values"))
}

func (i *pageIterator[T]) parse(values gjson.Result) ([]T, error) {
	list := []T{}
	var parseErr error
	values.ForEach(func(_, value gjson.Result) bool {
		obj, err := i.Parse(value)
		if err != nil {
			parseErr = err
			return false
		}

		list = append(list, obj)
		return true
	})

	return list, parseErr
}

// GetAll returns the values from all pages.
func (i *pageIterator[T]) GetAll(ctx context.Context) ([]T, error) {
	result := []T{}
	for i.HasNext() {
		page, err := i.Next(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching page at %d", i.start)
		}

		result = append(result, page...)
	}

	return result, nil
}

// Paginate collects every value of a paged collection.
func (c *Client) Paginate(ctx context.Context, url string) ([]gjson.Result, error) {
	it := newPageIterator(&newPageIteratorOptions[gjson.Result]{
		Client:     c,
		RequestURL: url,
		Parse: func(value gjson.Result) (gjson.Result, error) {
			return value, nil
		},
	})

	return it.GetAll(ctx)
}
