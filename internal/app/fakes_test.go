package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"claimgate/internal/model"
)

// In-memory stand-ins for the store interfaces.

type fakeTokenStore struct {
	mu     sync.Mutex
	nextID uint
	tokens map[string]*model.UploadToken
	err    error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*model.UploadToken)}
}

func (f *fakeTokenStore) Create(t *model.UploadToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	cp := *t
	f.tokens[t.Token] = &cp
	return nil
}

func (f *fakeTokenStore) GetByToken(token string) (*model.UploadToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTokenStore) ListByClaimID(claimID uint) ([]model.UploadToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var list []model.UploadToken
	for _, t := range f.tokens {
		if t.ClaimID == claimID {
			list = append(list, *t)
		}
	}
	return list, nil
}

type fakeUserStore struct {
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User)}
}

func (f *fakeUserStore) Create(u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeCompanyStore struct {
	nextID    uint
	companies map[uint]*model.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[uint]*model.Company)}
}

func (f *fakeCompanyStore) Create(c *model.Company) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanyStore) GetByName(name string) (*model.Company, error) {
	for _, c := range f.companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyStore) GetByID(id uint) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type fakeClaimStore struct {
	claims map[uint]*model.Claim
}

func newFakeClaimStore(claims ...*model.Claim) *fakeClaimStore {
	f := &fakeClaimStore{claims: make(map[uint]*model.Claim)}
	for _, c := range claims {
		f.claims[c.ID] = c
	}
	return f
}

func (f *fakeClaimStore) Create(c *model.Claim) error {
	c.ID = uint(len(f.claims) + 1)
	f.claims[c.ID] = c
	return nil
}

func (f *fakeClaimStore) GetByIDAndCompanyID(id, companyID uint) (*model.Claim, error) {
	c, ok := f.claims[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeClaimStore) ListByCompanyID(companyID uint) ([]model.Claim, error) {
	var list []model.Claim
	for _, c := range f.claims {
		if c.CompanyID == companyID {
			list = append(list, *c)
		}
	}
	return list, nil
}

type fakeDocumentStore struct {
	nextID uint
	docs   []model.Document
	err    error
}

func (f *fakeDocumentStore) Create(d *model.Document) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	d.ID = f.nextID
	d.CreatedAt = time.Now()
	f.docs = append(f.docs, *d)
	return nil
}

func (f *fakeDocumentStore) ListByClaimID(claimID uint) ([]model.Document, error) {
	var list []model.Document
	for _, d := range f.docs {
		if d.ClaimID == claimID {
			list = append(list, d)
		}
	}
	return list, nil
}

func (f *fakeDocumentStore) ListByCompanyID(companyID uint) ([]model.Document, error) {
	var list []model.Document
	for _, d := range f.docs {
		if d.CompanyID == companyID {
			list = append(list, d)
		}
	}
	return list, nil
}

type fakeEventStore struct {
	events []model.UploadEvent
	err    error
}

func (f *fakeEventStore) ListByOutcome(outcome string) ([]model.UploadEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []model.UploadEvent
	for _, evt := range f.events {
		if evt.Outcome == outcome {
			list = append(list, evt)
		}
	}
	return list, nil
}

type storedObject struct {
	key         string
	size        int64
	contentType string
	data        []byte
}

type fakeObjectStore struct {
	puts       []storedObject
	failOnPut  int // 1-based call number to fail on; 0 = never
	putCalls   int
	presignErr error
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	f.putCalls++
	if f.failOnPut != 0 && f.putCalls == f.failOnPut {
		return errors.New("connection reset by peer")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	f.puts = append(f.puts, storedObject{key: key, size: size, contentType: contentType, data: buf.Bytes()})
	return nil
}

func (f *fakeObjectStore) PresignedURL(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return fmt.Sprintf("https://store.example/%s?sig=abc", key), nil
}

type fakePublisher struct {
	events []model.UploadEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, evt model.UploadEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

type fakeScopeCache struct {
	scopes map[string]*model.TokenScope
	gets   int
	sets   int
}

func newFakeScopeCache() *fakeScopeCache {
	return &fakeScopeCache{scopes: make(map[string]*model.TokenScope)}
}

func (f *fakeScopeCache) GetScope(ctx context.Context, token string) (*model.TokenScope, bool, error) {
	f.gets++
	s, ok := f.scopes[token]
	return s, ok, nil
}

func (f *fakeScopeCache) SetScope(ctx context.Context, scope *model.TokenScope) error {
	f.sets++
	f.scopes[scope.Token] = scope
	return nil
}
