package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/database/mongodb/repository"
	cErr "assetflow/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 記憶體版 store，行為對齊 mongodb repository

var errDuplicate = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}

type snapshotter interface {
	snapshot() func()
}

type fakePersonStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]model.Person
}

func newFakePersonStore(persons ...model.Person) *fakePersonStore {
	s := &fakePersonStore{byID: map[primitive.ObjectID]model.Person{}}
	for _, p := range persons {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.byID[p.ID] = p
	}
	return s
}

func (s *fakePersonStore) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[primitive.ObjectID]model.Person, len(s.byID))
	for k, v := range s.byID {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = saved
	}
}

func (s *fakePersonStore) Create(_ context.Context, person *model.Person) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.byID {
		if p.Email == person.Email {
			return nil, errDuplicate
		}
	}
	if person.ID.IsZero() {
		person.ID = primitive.NewObjectID()
	}
	s.byID[person.ID] = *person
	return person, nil
}

func (s *fakePersonStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (s *fakePersonStore) GetByEmail(_ context.Context, email string) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.byID {
		if p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakePersonStore) List(_ context.Context, query core.PersonQuery) ([]*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Person, 0)
	for _, p := range s.byID {
		switch {
		case query.HREmail != "":
			if p.HREmail != query.HREmail {
				continue
			}
		case query.Unaffiliated:
			if p.HREmail != "" || p.Role == core.RoleHRManager {
				continue
			}
		}
		if query.SearchText != "" && !containsFold(p.Name, query.SearchText) {
			continue
		}
		found := p
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakePersonStore) ListByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			found := p
			out = append(out, &found)
		}
	}
	return out, nil
}

func (s *fakePersonStore) UpdateByID(_ context.Context, id primitive.ObjectID, patch model.PersonPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return 0, nil
	}
	patch.Apply(&p)
	s.byID[id] = p
	return 1, nil
}

func (s *fakePersonStore) UpdateByEmail(_ context.Context, email string, patch model.PersonPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.byID {
		if p.Email == email {
			patch.Apply(&p)
			s.byID[id] = p
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakePersonStore) UpdateMany(_ context.Context, ids []primitive.ObjectID, patch model.PersonPatch) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched, modified int64
	for _, id := range ids {
		p, ok := s.byID[id]
		if !ok {
			continue
		}
		matched++
		before := p
		patch.Apply(&p)
		if p != before {
			modified++
		}
		s.byID[id] = p
	}
	return matched, modified, nil
}

func (s *fakePersonStore) CountByHR(_ context.Context, hrEmail string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.byID {
		if p.HREmail == hrEmail {
			n++
		}
	}
	return n, nil
}

type fakeAssetStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]model.Asset
}

func newFakeAssetStore(assets ...model.Asset) *fakeAssetStore {
	s := &fakeAssetStore{byID: map[primitive.ObjectID]model.Asset{}}
	for _, a := range assets {
		s.byID[a.ID] = a
	}
	return s
}

func (s *fakeAssetStore) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[primitive.ObjectID]model.Asset, len(s.byID))
	for k, v := range s.byID {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = saved
	}
}

func (s *fakeAssetStore) quantity(id primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id].AssetQuantity
}

func (s *fakeAssetStore) Create(_ context.Context, asset *model.Asset) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	s.byID[asset.ID] = *asset
	return asset, nil
}

func (s *fakeAssetStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &a, nil
}

func (s *fakeAssetStore) List(_ context.Context, query core.AssetQuery) ([]*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Asset, 0)
	for _, a := range s.byID {
		if query.HREmail != "" && a.HREmail != query.HREmail {
			continue
		}
		if query.SearchText != "" && !containsFold(a.AssetName, query.SearchText) {
			continue
		}
		if !matchesCategory(query.Category, a.AssetType, a.AssetQuantity) {
			continue
		}
		found := a
		out = append(out, &found)
	}
	return out, nil
}

func (s *fakeAssetStore) Update(_ context.Context, id primitive.ObjectID, patch model.AssetPatch) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	patch.Apply(&a)
	s.byID[id] = a
	return &a, nil
}

func (s *fakeAssetStore) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if delta < 0 && a.AssetQuantity < -delta {
		return nil, repository.ErrInsufficientQuantity
	}
	a.AssetQuantity += delta
	s.byID[id] = a
	return &a, nil
}

func (s *fakeAssetStore) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func (s *fakeAssetStore) CountOutOfStock(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.byID {
		if a.AssetQuantity <= 0 {
			n++
		}
	}
	return n, nil
}

type fakeAssetRequestStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]model.AssetRequest
}

func newFakeAssetRequestStore(requests ...model.AssetRequest) *fakeAssetRequestStore {
	s := &fakeAssetRequestStore{byID: map[primitive.ObjectID]model.AssetRequest{}}
	for _, r := range requests {
		r.Live = r.RequestStatus.Live()
		s.byID[r.ID] = r
	}
	return s
}

func (s *fakeAssetRequestStore) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[primitive.ObjectID]model.AssetRequest, len(s.byID))
	for k, v := range s.byID {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byID = saved
	}
}

func (s *fakeAssetRequestStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *fakeAssetRequestStore) Create(_ context.Context, request *model.AssetRequest) (*model.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request.Live = request.RequestStatus.Live()
	for _, r := range s.byID {
		if r.Live && request.Live && r.EmployeeEmail == request.EmployeeEmail && r.AssetID == request.AssetID {
			return nil, errDuplicate
		}
	}
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	s.byID[request.ID] = *request
	return request, nil
}

func (s *fakeAssetRequestStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (s *fakeAssetRequestStore) List(_ context.Context, query core.AssetRequestQuery) ([]*model.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.AssetRequest, 0)
	for _, r := range s.byID {
		if query.HREmail != "" && r.HREmail != query.HREmail {
			continue
		}
		if query.EmployeeEmail != "" && r.EmployeeEmail != query.EmployeeEmail {
			continue
		}
		if query.Status != "" && r.RequestStatus != query.Status {
			continue
		}
		if query.SearchText != "" && !containsFold(r.AssetName, query.SearchText) {
			continue
		}
		if !matchesCategory(query.Category, r.AssetType, r.AssetQuantity) {
			continue
		}
		found := r
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestingDate.After(out[j].RequestingDate) })
	return out, nil
}

func (s *fakeAssetRequestStore) Transition(_ context.Context, id primitive.ObjectID, from, to core.RequestStatus, at time.Time) (*model.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok || r.RequestStatus != from {
		return nil, repository.ErrStaleTransition
	}
	r.ApplyTransition(to, at)
	s.byID[id] = r
	return &r, nil
}

func (s *fakeAssetRequestStore) SyncAssetQuantity(_ context.Context, assetID primitive.ObjectID, quantity int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.byID {
		if r.AssetID == assetID {
			r.AssetQuantity = quantity
			s.byID[id] = r
			n++
		}
	}
	return n, nil
}

func (s *fakeAssetRequestStore) CountLiveByAsset(_ context.Context, assetID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.byID {
		if r.AssetID == assetID && r.Live {
			n++
		}
	}
	return n, nil
}

func (s *fakeAssetRequestStore) CountPending(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.byID {
		if r.RequestStatus == core.RequestStatusPending {
			n++
		}
	}
	return n, nil
}

type fakePaymentStore struct {
	mu   sync.Mutex
	byTx map[string]model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byTx: map[string]model.Payment{}}
}

func (s *fakePaymentStore) snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[string]model.Payment, len(s.byTx))
	for k, v := range s.byTx {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.byTx = saved
	}
}

func (s *fakePaymentStore) Create(_ context.Context, payment *model.Payment) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byTx[payment.TransactionID]; ok {
		return nil, errDuplicate
	}
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now().UTC()
	}
	s.byTx[payment.TransactionID] = *payment
	return payment, nil
}

func (s *fakePaymentStore) GetByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byTx[transactionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (s *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Payment, 0)
	for _, p := range s.byTx {
		if p.Email == email {
			found := p
			out = append(out, &found)
		}
	}
	return out, nil
}

// fakeTransactor 失敗時還原所有 store
type fakeTransactor struct {
	stores []snapshotter
}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), len(t.stores))
	for i, s := range t.stores {
		restores[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	intents  map[string]*PaymentIntent
	created  []int64
	retrieve int
}

func newFakeGateway(intents ...*PaymentIntent) *fakeGateway {
	g := &fakeGateway{intents: map[string]*PaymentIntent{}}
	for _, intent := range intents {
		g.intents[intent.ID] = intent
	}
	return g
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, amount)
	id := "pi_" + primitive.NewObjectID().Hex()
	intent := &PaymentIntent{ID: id, ClientSecret: id + "_secret", Status: "requires_payment_method", Amount: amount, Currency: currency, Metadata: metadata}
	g.intents[id] = intent
	return intent, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, intentID string) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.retrieve++
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, cErr.BadRequest("No such payment_intent: " + intentID)
	}
	return intent, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func matchesCategory(category core.AssetCategory, assetType core.AssetType, quantity int) bool {
	switch category {
	case core.CategoryReturnable:
		return assetType == core.AssetTypeReturnable
	case core.CategoryNonReturnable:
		return assetType == core.AssetTypeNonReturnable
	case core.CategoryInStock:
		return quantity > 0
	case core.CategoryOutOfStock:
		return quantity <= 0
	}
	return true
}
