// Package share issues short codes for completed results so the
// transfer-encoded URL can be passed around without its full query string.
package share

import (
	"context"

	"github.com/pkg/errors"
	hashids "github.com/speps/go-hashids"

	"madurez42001/internal/cache"
	"madurez42001/internal/transfer"
)

// ErrNotFound is returned for unknown or expired share codes.
var ErrNotFound = errors.New("share: code not found")

// Service mints and resolves share codes. Codes are hashids over a Redis
// counter: short, non-sequential looking, and with no stored state beyond
// the query string itself.
type Service struct {
	cache cache.ShareCache
	hash  *hashids.HashID
}

// NewService creates a share service. The salt only decorrelates codes from
// the underlying counter; it carries no secrecy requirement.
func NewService(store cache.ShareCache, salt string) (*Service, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 6
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, errors.Wrap(err, "share: hashids init")
	}
	return &Service{
		cache: store,
		hash:  h,
	}, nil
}

// Create stores the responses' transfer encoding and returns the short code
// for it. Only the sanitized re-encoding is stored, never the raw input.
func (s *Service) Create(ctx context.Context, responses map[string]int) (string, error) {
	seq, err := s.cache.NextSeq(ctx)
	if err != nil {
		return "", err
	}
	code, err := s.hash.EncodeInt64([]int64{seq})
	if err != nil {
		return "", errors.Wrap(err, "share: encode code")
	}
	if err := s.cache.Set(ctx, code, transfer.EncodeQuery(responses)); err != nil {
		return "", err
	}
	return code, nil
}

// Resolve returns the transfer query string stored behind a code.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	rawQuery, err := s.cache.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if rawQuery == "" {
		return "", ErrNotFound
	}
	return rawQuery, nil
}
