package service

import (
	"context"
	"strconv"
	"time"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/ports"
)

// In-memory fakes for the repository and port interfaces. Only the behavior
// the services under test rely on is modelled.

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, req *model.SignupRequest, hash string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == req.Email {
			return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
		}
	}
	f.nextID++
	u := &model.User{
		ID:           "user-" + strconv.Itoa(f.nextID),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         domainauth.RoleUser,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) List(_ context.Context, _ model.UsersListOptions) ([]*model.User, error) {
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

type fakeSessionStore struct {
	sessions map[string]domainauth.Session
}

var _ ports.SessionStore = (*fakeSessionStore)(nil)

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]domainauth.Session{}}
}

func (f *fakeSessionStore) Save(_ context.Context, sess domainauth.Session) error {
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return domainauth.Session{}, apperrors.Unauthorized("session not found")
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

// fakeHasher avoids bcrypt cost in unit tests; "hashed:" marks the output.
type fakeHasher struct{}

var _ ports.PasswordHasher = fakeHasher{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return apperrors.Unauthorized("mismatch")
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*model.Product
	nextID   int
}

var _ core.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*model.Product{}}
}

func (f *fakeProductRepo) add(p *model.Product) *model.Product {
	f.nextID++
	if p.ID == "" {
		p.ID = "product-" + strconv.Itoa(f.nextID)
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return f.add(&model.Product{
		NurseryID:  req.NurseryID,
		Name:       req.Name,
		Category:   req.Category,
		PriceMinor: req.PriceMinor,
		Stock:      req.Stock,
		IsAvailable: func() bool {
			if req.IsAvailable != nil {
				return *req.IsAvailable
			}
			return true
		}(),
	}), nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("product not found")
}

func (f *fakeProductRepo) List(_ context.Context, _ model.ProductsListOptions) ([]*model.Product, error) {
	out := make([]*model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.PriceMinor != nil {
		p.PriceMinor = *req.PriceMinor
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	return p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

type fakeNurseryRepo struct {
	nurseries map[string]*model.Nursery
	nextID    int
}

var _ core.NurseryRepository = (*fakeNurseryRepo)(nil)

func newFakeNurseryRepo() *fakeNurseryRepo {
	return &fakeNurseryRepo{nurseries: map[string]*model.Nursery{}}
}

func (f *fakeNurseryRepo) add(n *model.Nursery) *model.Nursery {
	f.nextID++
	if n.ID == "" {
		n.ID = "nursery-" + strconv.Itoa(f.nextID)
	}
	f.nurseries[n.ID] = n
	return n
}

func (f *fakeNurseryRepo) Create(_ context.Context, ownerID string, req *model.CreateNurseryRequest) (*model.Nursery, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	for _, n := range f.nurseries {
		if n.OwnerID == ownerID {
			return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
		}
	}
	return f.add(&model.Nursery{
		OwnerID: ownerID,
		Name:    req.Name,
		Address: req.Address,
		Status:  model.NurseryStatusPending,
	}), nil
}

func (f *fakeNurseryRepo) GetByID(_ context.Context, id string) (*model.Nursery, error) {
	if n, ok := f.nurseries[id]; ok {
		return n, nil
	}
	return nil, apperrors.NotFound("nursery not found")
}

func (f *fakeNurseryRepo) GetByOwner(_ context.Context, ownerID string) (*model.Nursery, error) {
	for _, n := range f.nurseries {
		if n.OwnerID == ownerID {
			return n, nil
		}
	}
	return nil, apperrors.NotFound("nursery not found")
}

func (f *fakeNurseryRepo) List(_ context.Context, _, _ int, onlyApproved bool) ([]*model.Nursery, error) {
	out := []*model.Nursery{}
	for _, n := range f.nurseries {
		if onlyApproved && n.Status != model.NurseryStatusApproved {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNurseryRepo) Update(ctx context.Context, id string, req model.UpdateNurseryRequest) (*model.Nursery, error) {
	n, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		n.Name = *req.Name
	}
	if req.Status != nil {
		n.Status = *req.Status
	}
	return n, nil
}

func (f *fakeNurseryRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.nurseries[id]; !ok {
		return false, nil
	}
	delete(f.nurseries, id)
	return true, nil
}

type fakeCartRepo struct {
	items  map[string]*model.CartItem
	lines  map[string][]model.CartLine
	nextID int
}

var _ core.CartRepository = (*fakeCartRepo)(nil)

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		items: map[string]*model.CartItem{},
		lines: map[string][]model.CartLine{},
	}
}

func (f *fakeCartRepo) Add(_ context.Context, userID string, req *model.AddCartItemRequest) (*model.CartItem, error) {
	f.nextID++
	item := &model.CartItem{
		ID:        "cart-" + strconv.Itoa(f.nextID),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, userID, itemID string, req model.UpdateCartItemRequest) (*model.CartItem, error) {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return nil, apperrors.NotFound("cart item not found")
	}
	item.Quantity = req.Quantity
	return item, nil
}

func (f *fakeCartRepo) Remove(_ context.Context, userID, itemID string) (bool, error) {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(f.items, itemID)
	return true, nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID string) error {
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
		}
	}
	delete(f.lines, userID)
	return nil
}

func (f *fakeCartRepo) Lines(_ context.Context, userID string) ([]model.CartLine, error) {
	return f.lines[userID], nil
}

type fakeOrderRepo struct {
	orders map[string]*model.Order
	items  map[string][]model.OrderItem
	nextID int
}

var _ core.OrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*model.Order{},
		items:  map[string][]model.OrderItem{},
	}
}

func (f *fakeOrderRepo) add(o *model.Order) *model.Order {
	f.nextID++
	if o.ID == "" {
		o.ID = "order-" + strconv.Itoa(f.nextID)
	}
	f.orders[o.ID] = o
	return o
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, apperrors.NotFound("order not found")
}

func (f *fakeOrderRepo) ListByStripeSession(_ context.Context, sessionID string) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range f.orders {
		if o.StripeSessionID != nil && *o.StripeSessionID == sessionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Items(_ context.Context, orderID string) ([]model.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) List(_ context.Context, opts model.OrdersListOptions) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range f.orders {
		if opts.UserID != nil && o.UserID != *opts.UserID {
			continue
		}
		if opts.NurseryID != nil && o.NurseryID != *opts.NurseryID {
			continue
		}
		if opts.Status != nil && o.Status != *opts.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	o, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

func (f *fakeOrderRepo) AttachStripeSession(ctx context.Context, orderID, sessionID string) error {
	o, err := f.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	o.StripeSessionID = &sessionID
	return nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, sessionID string) ([]*model.Order, error) {
	orders, _ := f.ListByStripeSession(ctx, sessionID)
	for _, o := range orders {
		o.PaymentStatus = model.PaymentStatusPaid
	}
	return orders, nil
}

func (f *fakeOrderRepo) SalesStats(_ context.Context, nurseryID *string) (*model.SalesStats, error) {
	stats := &model.SalesStats{}
	for _, o := range f.orders {
		if nurseryID != nil && o.NurseryID != *nurseryID {
			continue
		}
		stats.TotalOrders++
		if o.Status == model.OrderStatusPending {
			stats.PendingOrders++
		}
		if o.PaymentStatus == model.PaymentStatusPaid {
			stats.PaidOrders++
			stats.RevenueMinor += o.TotalMinor
			stats.CommissionMinor += o.CommissionMinor
		}
	}
	return stats, nil
}

type fakeSettingsRepo struct {
	settings model.CommissionSettings
}

var _ core.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) Get(_ context.Context) (*model.CommissionSettings, error) {
	s := f.settings
	if s.CommissionRate == 0 && s.ID == "" {
		s.CommissionRate = model.DefaultCommissionRate
	}
	return &s, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, req model.UpdateCommissionRequest, updatedBy string) (*model.CommissionSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	f.settings = model.CommissionSettings{
		ID:             "settings-1",
		CommissionRate: req.CommissionRate,
		UpdatedBy:      updatedBy,
	}
	return &f.settings, nil
}

type fakePaymentGateway struct {
	sessionID  string
	sessionURL string
	createErr  error
	verifyErr  error
	verified   string
}

var _ ports.PaymentGateway = (*fakePaymentGateway)(nil)

func (f *fakePaymentGateway) CreateCheckoutSession(_ context.Context, _ ports.CheckoutSessionInput) (*ports.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &ports.CheckoutSession{ID: f.sessionID, URL: f.sessionURL}, nil
}

func (f *fakePaymentGateway) VerifyWebhook(_ []byte, _ string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.verified, nil
}
