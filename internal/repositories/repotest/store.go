// Package repotest provides an in-memory implementation of the repository
// interfaces that mirrors the store's constraints, for use in tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Store struct {
	mu            sync.Mutex
	nextID        int
	teams         map[int]MaintenanceTeam
	accounts      map[int]Account
	profiles      map[int]UserProfile
	equipment     map[int]Equipment
	requests      map[int]MaintenanceRequest
	notifications map[int]Notification

	Now func() time.Time
	// InsertAlertErr, when set, is consulted before every alert insert.
	InsertAlertErr func(n *Notification) error
}

func New() *Store {
	return &Store{
		teams:         map[int]MaintenanceTeam{},
		accounts:      map[int]Account{},
		profiles:      map[int]UserProfile{},
		equipment:     map[int]Equipment{},
		requests:      map[int]MaintenanceRequest{},
		notifications: map[int]Notification{},
		Now:           time.Now,
	}
}

func (s *Store) Repository() repositories.Repository {
	return repositories.Repository{
		Team:               teamRepo{s},
		Account:            accountRepo{s},
		UserProfile:        profileRepo{s},
		Equipment:          equipmentRepo{s},
		MaintenanceRequest: requestRepo{s},
		Notification:       notificationRepo{s},
	}
}

// Execute runs fn without a database handle.
func (s *Store) Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	return fn(ctx, nil)
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

// Notifications returns every stored notification ordered by id.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Request returns the stored row without relations.
func (s *Store) Request(id int) (MaintenanceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	return r, ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func matches(search string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// sortBy applies a `field` / `-field` ordering using the given comparators,
// keeping fallback when the field is unknown.
func sortBy[T any](items []T, ordering string, less map[string]func(a, b T) bool, fallback func(a, b T) bool) {
	ordering = strings.TrimSpace(ordering)
	desc := strings.HasPrefix(ordering, "-")
	cmp, ok := less[strings.TrimPrefix(ordering, "-")]
	if !ok {
		sort.SliceStable(items, func(i, j int) bool { return fallback(items[i], items[j]) })
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return cmp(items[j], items[i])
		}
		return cmp(items[i], items[j])
	})
}

func dateLess(a, b *datatypes.Date) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return time.Time(*a).Before(time.Time(*b))
}

func intPtr(v any, key string) *int {
	switch value := v.(type) {
	case nil:
		return nil
	case *int:
		if value == nil {
			return nil
		}
		copied := *value
		return &copied
	case int:
		return &value
	}
	panic(fmt.Sprintf("repotest: unsupported value %T for %s", v, key))
}

func stringPtr(v any, key string) *string {
	switch value := v.(type) {
	case nil:
		return nil
	case *string:
		return value
	}
	panic(fmt.Sprintf("repotest: unsupported value %T for %s", v, key))
}

func datePtr(v any, key string) *datatypes.Date {
	switch value := v.(type) {
	case nil:
		return nil
	case *datatypes.Date:
		return value
	}
	panic(fmt.Sprintf("repotest: unsupported value %T for %s", v, key))
}

func decimalPtr(v any, key string) *decimal.Decimal {
	switch value := v.(type) {
	case nil:
		return nil
	case *decimal.Decimal:
		return value
	}
	panic(fmt.Sprintf("repotest: unsupported value %T for %s", v, key))
}

func unsupported(entity, key string) {
	panic(fmt.Sprintf("repotest: unsupported %s column %q", entity, key))
}

// teams

type teamRepo struct{ s *Store }

func (r teamRepo) List(
	ctx context.Context,
	tx *gorm.DB,
	filter repositories.TeamFilter,
) ([]*MaintenanceTeam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*MaintenanceTeam
	for _, t := range r.s.teams {
		if filter.Search != "" && !matches(filter.Search, t.TeamName) {
			continue
		}
		team := t
		out = append(out, &team)
	}

	byName := func(a, b *MaintenanceTeam) bool { return a.TeamName < b.TeamName }
	sortBy(out, filter.Ordering, map[string]func(a, b *MaintenanceTeam) bool{
		"team_name": byName,
		"id":        func(a, b *MaintenanceTeam) bool { return a.ID < b.ID },
	}, byName)
	return out, nil
}

func (r teamRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*MaintenanceTeam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.teams[id]
	if !ok {
		return nil, apperrors.NotFound("team not found")
	}
	return &t, nil
}

func (r teamRepo) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.teams[id]
	return ok, nil
}

func (r teamRepo) Create(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	team.ID = r.s.id()
	r.s.teams[team.ID] = *team
	return nil
}

func (r teamRepo) Update(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teams[team.ID]; !ok {
		return apperrors.NotFound("team %d not found", team.ID)
	}
	r.s.teams[team.ID] = *team
	return nil
}

func (r teamRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teams[id]; !ok {
		return apperrors.NotFound("team %d not found", id)
	}
	for _, e := range r.s.equipment {
		if e.MaintenanceTeamID == id {
			return apperrors.Conflict("team is still referenced and cannot be deleted")
		}
	}
	for _, req := range r.s.requests {
		if req.TeamID == id {
			return apperrors.Conflict("team is still referenced and cannot be deleted")
		}
	}
	for pid, p := range r.s.profiles {
		if p.TeamID != nil && *p.TeamID == id {
			p.TeamID = nil
			r.s.profiles[pid] = p
		}
	}
	delete(r.s.teams, id)
	return nil
}

func (r teamRepo) CountReferences(ctx context.Context, tx *gorm.DB, id int) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var equipment, requests int64
	for _, e := range r.s.equipment {
		if e.MaintenanceTeamID == id {
			equipment++
		}
	}
	for _, req := range r.s.requests {
		if req.TeamID == id {
			requests++
		}
	}
	return equipment, requests, nil
}

// accounts

type accountRepo struct{ s *Store }

func (r accountRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, apperrors.NotFound("account not found")
	}
	return &a, nil
}

func (r accountRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, apperrors.NotFound("account not found")
}

func (r accountRepo) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.accounts[id]
	return ok, nil
}

func (r accountRepo) Create(ctx context.Context, tx *gorm.DB, account *Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Username == account.Username {
			return apperrors.Conflict("account already exists")
		}
	}
	account.ID = r.s.id()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = r.s.Now()
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r accountRepo) Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(updates) == 0 {
		return nil
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return apperrors.NotFound("account %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "username":
			username := value.(string)
			for otherID, other := range r.s.accounts {
				if otherID != id && other.Username == username {
					return apperrors.Conflict("account already exists")
				}
			}
			a.Username = username
		case "first_name":
			a.FirstName = value.(string)
		case "last_name":
			a.LastName = value.(string)
		case "email":
			a.Email = value.(string)
		case "password_hash":
			a.PasswordHash = value.(string)
		case "is_active":
			a.IsActive = value.(bool)
		default:
			unsupported("account", key)
		}
	}
	r.s.accounts[id] = a
	return nil
}

func (r accountRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return apperrors.NotFound("account %d not found", id)
	}
	for pid, p := range r.s.profiles {
		if p.AccountID == id {
			delete(r.s.profiles, pid)
		}
	}
	for nid, n := range r.s.notifications {
		if n.RecipientID == id {
			delete(r.s.notifications, nid)
		}
	}
	for rid, req := range r.s.requests {
		if req.TechnicianID != nil && *req.TechnicianID == id {
			req.TechnicianID = nil
			r.s.requests[rid] = req
		}
	}
	delete(r.s.accounts, id)
	return nil
}

// profiles

type profileRepo struct{ s *Store }

func (r profileRepo) withRelations(p UserProfile) *UserProfile {
	if a, ok := r.s.accounts[p.AccountID]; ok {
		p.Account = &a
	}
	if p.TeamID != nil {
		if t, ok := r.s.teams[*p.TeamID]; ok {
			p.Team = &t
		}
	}
	return &p
}

func (r profileRepo) List(
	ctx context.Context,
	tx *gorm.DB,
	filter repositories.ProfileFilter,
) ([]*UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*UserProfile
	for _, p := range r.s.profiles {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		if filter.TeamID != nil && (p.TeamID == nil || *p.TeamID != *filter.TeamID) {
			continue
		}
		profile := r.withRelations(p)
		if filter.Search != "" {
			if profile.Account == nil ||
				!matches(filter.Search, profile.Account.Username, profile.Account.FirstName, profile.Account.LastName) {
				continue
			}
		}
		out = append(out, profile)
	}

	byID := func(a, b *UserProfile) bool { return a.ID < b.ID }
	sortBy(out, filter.Ordering, map[string]func(a, b *UserProfile) bool{
		"username": func(a, b *UserProfile) bool { return a.Account.Username < b.Account.Username },
		"role":     func(a, b *UserProfile) bool { return a.Role < b.Role },
		"id":       byID,
	}, byID)
	return out, nil
}

func (r profileRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return r.withRelations(p), nil
}

func (r profileRepo) GetByAccountID(ctx context.Context, tx *gorm.DB, accountID int) (*UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.profiles {
		if p.AccountID == accountID {
			return r.withRelations(p), nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[profile.AccountID]; !ok {
		return apperrors.Validation("user references a record that does not exist")
	}
	if profile.TeamID != nil {
		if _, ok := r.s.teams[*profile.TeamID]; !ok {
			return apperrors.Validation("user references a record that does not exist")
		}
	}
	for _, p := range r.s.profiles {
		if p.AccountID == profile.AccountID {
			return apperrors.Conflict("user already exists")
		}
	}
	if profile.Role == "" {
		profile.Role = RoleUser
	}
	profile.ID = r.s.id()
	stored := *profile
	stored.Account, stored.Team = nil, nil
	r.s.profiles[profile.ID] = stored
	return nil
}

func (r profileRepo) Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(updates) == 0 {
		return nil
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return apperrors.NotFound("user %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "role":
			p.Role = value.(Role)
		case "team_id":
			p.TeamID = intPtr(value, key)
			if p.TeamID != nil {
				if _, ok := r.s.teams[*p.TeamID]; !ok {
					return apperrors.Validation("user references a record that does not exist")
				}
			}
		case "avatar_url":
			p.AvatarURL = stringPtr(value, key)
		default:
			unsupported("user", key)
		}
	}
	r.s.profiles[id] = p
	return nil
}

// equipment

type equipmentRepo struct{ s *Store }

func (r equipmentRepo) withRelations(e Equipment) *Equipment {
	if t, ok := r.s.teams[e.MaintenanceTeamID]; ok {
		e.MaintenanceTeam = &t
	}
	return &e
}

func (r equipmentRepo) List(
	ctx context.Context,
	tx *gorm.DB,
	filter repositories.EquipmentFilter,
) ([]*Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*Equipment
	for _, e := range r.s.equipment {
		if filter.TeamID != nil && e.MaintenanceTeamID != *filter.TeamID {
			continue
		}
		if filter.Department != nil && (e.Department == nil || *e.Department != *filter.Department) {
			continue
		}
		if filter.IsActive != nil && e.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !matches(filter.Search, e.Name, e.SerialNumber, deref(e.OwnerName)) {
			continue
		}
		out = append(out, r.withRelations(e))
	}

	byID := func(a, b *Equipment) bool { return a.ID < b.ID }
	sortBy(out, filter.Ordering, map[string]func(a, b *Equipment) bool{
		"name":          func(a, b *Equipment) bool { return a.Name < b.Name },
		"purchase_date": func(a, b *Equipment) bool { return dateLess(a.PurchaseDate, b.PurchaseDate) },
		"id":            byID,
	}, byID)
	return out, nil
}

func (r equipmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.equipment[id]
	if !ok {
		return nil, apperrors.NotFound("equipment not found")
	}
	return r.withRelations(e), nil
}

func (r equipmentRepo) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.equipment[id]
	return ok, nil
}

func (r equipmentRepo) serialTaken(serial string, exceptID int) bool {
	for id, e := range r.s.equipment {
		if id != exceptID && e.SerialNumber == serial {
			return true
		}
	}
	return false
}

func (r equipmentRepo) Create(ctx context.Context, tx *gorm.DB, equipment *Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.serialTaken(equipment.SerialNumber, 0) {
		return apperrors.Conflict("equipment already exists")
	}
	if _, ok := r.s.teams[equipment.MaintenanceTeamID]; !ok {
		return apperrors.Validation("equipment references a record that does not exist")
	}
	equipment.ID = r.s.id()
	stored := *equipment
	stored.MaintenanceTeam = nil
	r.s.equipment[equipment.ID] = stored
	return nil
}

func (r equipmentRepo) Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(updates) == 0 {
		return nil
	}
	e, ok := r.s.equipment[id]
	if !ok {
		return apperrors.NotFound("equipment %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "name":
			e.Name = value.(string)
		case "serial_number":
			serial := value.(string)
			if r.serialTaken(serial, id) {
				return apperrors.Conflict("equipment already exists")
			}
			e.SerialNumber = serial
		case "department":
			switch v := value.(type) {
			case nil:
				e.Department = nil
			case *Department:
				e.Department = v
			}
		case "owner_name":
			e.OwnerName = stringPtr(value, key)
		case "location":
			e.Location = stringPtr(value, key)
		case "purchase_date":
			e.PurchaseDate = datePtr(value, key)
		case "warranty_end":
			e.WarrantyEnd = datePtr(value, key)
		case "maintenance_team_id":
			teamID := value.(int)
			if _, ok := r.s.teams[teamID]; !ok {
				return apperrors.Validation("equipment references a record that does not exist")
			}
			e.MaintenanceTeamID = teamID
		case "is_active":
			e.IsActive = value.(bool)
		default:
			unsupported("equipment", key)
		}
	}
	r.s.equipment[id] = e
	return nil
}

func (r equipmentRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.equipment[id]; !ok {
		return apperrors.NotFound("equipment %d not found", id)
	}
	for rid, req := range r.s.requests {
		if req.EquipmentID == id {
			r.s.deleteRequestLocked(rid)
		}
	}
	delete(r.s.equipment, id)
	return nil
}

// maintenance requests

func (s *Store) deleteRequestLocked(id int) {
	for nid, n := range s.notifications {
		if n.RelatedRequestID != nil && *n.RelatedRequestID == id {
			delete(s.notifications, nid)
		}
	}
	delete(s.requests, id)
}

type requestRepo struct{ s *Store }

func (r requestRepo) withRelations(req MaintenanceRequest) *MaintenanceRequest {
	if e, ok := r.s.equipment[req.EquipmentID]; ok {
		req.Equipment = &e
	}
	if t, ok := r.s.teams[req.TeamID]; ok {
		req.Team = &t
	}
	if req.TechnicianID != nil {
		if a, ok := r.s.accounts[*req.TechnicianID]; ok {
			req.Technician = &a
		}
	}
	return &req
}

func (r requestRepo) checkReferences(req MaintenanceRequest) error {
	if _, ok := r.s.equipment[req.EquipmentID]; !ok {
		return apperrors.Validation("maintenance request references a record that does not exist")
	}
	if _, ok := r.s.teams[req.TeamID]; !ok {
		return apperrors.Validation("maintenance request references a record that does not exist")
	}
	if req.TechnicianID != nil {
		if _, ok := r.s.accounts[*req.TechnicianID]; !ok {
			return apperrors.Validation("maintenance request references a record that does not exist")
		}
	}
	return nil
}

func (r requestRepo) List(
	ctx context.Context,
	tx *gorm.DB,
	filter repositories.RequestFilter,
) ([]*MaintenanceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*MaintenanceRequest
	for _, req := range r.s.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.RequestType != nil && req.RequestType != *filter.RequestType {
			continue
		}
		if filter.TeamID != nil && req.TeamID != *filter.TeamID {
			continue
		}
		if filter.TechnicianID != nil && (req.TechnicianID == nil || *req.TechnicianID != *filter.TechnicianID) {
			continue
		}
		if filter.EquipmentID != nil && req.EquipmentID != *filter.EquipmentID {
			continue
		}
		full := r.withRelations(req)
		if filter.Search != "" {
			equipmentName := ""
			if full.Equipment != nil {
				equipmentName = full.Equipment.Name
			}
			if !matches(filter.Search, full.Subject, equipmentName) {
				continue
			}
		}
		out = append(out, full)
	}

	createdAt := func(a, b *MaintenanceRequest) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
	sortBy(out, filter.Ordering, map[string]func(a, b *MaintenanceRequest) bool{
		"created_at":     createdAt,
		"due_date":       func(a, b *MaintenanceRequest) bool { return dateLess(a.DueDate, b.DueDate) },
		"scheduled_date": func(a, b *MaintenanceRequest) bool { return dateLess(a.ScheduledDate, b.ScheduledDate) },
	}, func(a, b *MaintenanceRequest) bool { return createdAt(b, a) })
	return out, nil
}

func (r requestRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*MaintenanceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.requests[id]
	if !ok {
		return nil, apperrors.NotFound("maintenance request not found")
	}
	return r.withRelations(req), nil
}

func (r requestRepo) ListScheduledOn(ctx context.Context, tx *gorm.DB, day time.Time) ([]*MaintenanceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date := day.Format(utils.DateLayout)
	var out []*MaintenanceRequest
	for _, req := range r.s.requests {
		if req.ScheduledDate != nil && time.Time(*req.ScheduledDate).Format(utils.DateLayout) == date {
			out = append(out, r.withRelations(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r requestRepo) Create(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := request.BeforeCreate(nil); err != nil {
		return err
	}
	if err := r.checkReferences(*request); err != nil {
		return err
	}
	request.ID = r.s.id()
	request.CreatedAt = r.s.Now()
	stored := *request
	stored.Equipment, stored.Team, stored.Technician = nil, nil, nil
	r.s.requests[request.ID] = stored
	return nil
}

func (r requestRepo) Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(updates) == 0 {
		return nil
	}
	req, ok := r.s.requests[id]
	if !ok {
		return apperrors.NotFound("maintenance request %d not found", id)
	}
	for key, value := range updates {
		switch key {
		case "subject":
			req.Subject = value.(string)
		case "request_type":
			req.RequestType = value.(RequestType)
		case "equipment_id":
			req.EquipmentID = value.(int)
		case "team_id":
			req.TeamID = value.(int)
		case "technician_id":
			req.TechnicianID = intPtr(value, key)
		case "status":
			req.Status = value.(RequestStatus)
		case "scheduled_date":
			req.ScheduledDate = datePtr(value, key)
		case "due_date":
			req.DueDate = datePtr(value, key)
		case "duration_hours":
			req.DurationHours = decimalPtr(value, key)
		default:
			unsupported("maintenance request", key)
		}
	}
	if err := r.checkReferences(req); err != nil {
		return err
	}
	r.s.requests[id] = req
	return nil
}

func (r requestRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.requests[id]; !ok {
		return apperrors.NotFound("maintenance request %d not found", id)
	}
	r.s.deleteRequestLocked(id)
	return nil
}

// notifications

type notificationRepo struct{ s *Store }

func (r notificationRepo) ListForRecipient(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
	filter repositories.NotificationFilter,
) ([]*Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*Notification
	for _, n := range r.s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if filter.IsRead != nil && n.IsRead != *filter.IsRead {
			continue
		}
		notification := n
		out = append(out, &notification)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r notificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return nil, apperrors.NotFound("notification not found")
	}
	return &n, nil
}

func (r notificationRepo) createLocked(n *Notification) error {
	if _, ok := r.s.accounts[n.RecipientID]; !ok {
		return apperrors.Validation("notification references a record that does not exist")
	}
	if n.RelatedRequestID != nil {
		if _, ok := r.s.requests[*n.RelatedRequestID]; !ok {
			return apperrors.Validation("notification references a record that does not exist")
		}
	}
	n.ID = r.s.id()
	n.CreatedAt = r.s.Now()
	stored := *n
	stored.Recipient, stored.RelatedRequest = nil, nil
	r.s.notifications[n.ID] = stored
	return nil
}

func (r notificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.createLocked(notification)
}

func (r notificationRepo) InsertAlert(ctx context.Context, tx *gorm.DB, notification *Notification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.InsertAlertErr != nil {
		if err := r.s.InsertAlertErr(notification); err != nil {
			return false, err
		}
	}

	if notification.AlertDate != nil && notification.RelatedRequestID != nil {
		key := time.Time(*notification.AlertDate).Format(utils.DateLayout)
		for _, n := range r.s.notifications {
			if n.AlertDate == nil || n.RelatedRequestID == nil {
				continue
			}
			if n.RecipientID == notification.RecipientID &&
				*n.RelatedRequestID == *notification.RelatedRequestID &&
				time.Time(*n.AlertDate).Format(utils.DateLayout) == key {
				return false, nil
			}
		}
	}

	if err := r.createLocked(notification); err != nil {
		return false, err
	}
	return true, nil
}

func (r notificationRepo) ExistsCreatedBetween(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
	requestID int,
	start time.Time,
	end time.Time,
) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range r.s.notifications {
		if n.RecipientID != recipientID || n.RelatedRequestID == nil || *n.RelatedRequestID != requestID {
			continue
		}
		if !n.CreatedAt.Before(start) && n.CreatedAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return apperrors.NotFound("notification %d not found", id)
	}
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

func (r notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, recipientID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, n := range r.s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			r.s.notifications[id] = n
			count++
		}
	}
	return count, nil
}

func (r notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, recipientID int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, n := range r.s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
