package organizations

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/ports/changefeed"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

const (
	DefaultInviteTTL = 7 * 24 * time.Hour

	maxNameLen = 120
)

// InviteNotifier avisa al invitado (email). Un error no invalida la invitación.
type InviteNotifier interface {
	InviteCreated(ctx context.Context, org Organization, inv Invite) error
}

type Service struct {
	repo      Repository
	notifier  InviteNotifier
	feed      changefeed.Publisher
	log       logger.Logger
	inviteTTL time.Duration
	now       func() time.Time
}

type Option func(*Service)

func WithNotifier(n InviteNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithPublisher(p changefeed.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.feed = p
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithInviteTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.inviteTTL = d
		}
	}
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		feed:      changefeed.Nop{},
		log:       logger.Nop(),
		inviteTTL: DefaultInviteTTL,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	Name    string
	Type    Type
	Email   string
	Phone   string
	Address string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Organization, error) {
	userID = strings.TrimSpace(userID)
	name := strings.TrimSpace(in.Name)
	if userID == "" {
		return Organization{}, ErrInvalidInput
	}
	if name == "" || len(name) > maxNameLen {
		return Organization{}, fmt.Errorf("%w: name must be 1-%d chars", ErrInvalidInput, maxNameLen)
	}
	typ := Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	if !typ.Valid() {
		return Organization{}, fmt.Errorf("%w: unknown organization type %q", ErrInvalidInput, in.Type)
	}
	email, err := normalizeOptionalEmail(in.Email)
	if err != nil {
		return Organization{}, err
	}

	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return Organization{}, err
	}

	now := s.now()
	o := Organization{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		Type:      typ,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := Membership{
		OrganizationID: o.ID,
		UserID:         userID,
		Role:           RoleOwner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateOrganization(ctx, o, owner); err != nil {
		return Organization{}, err
	}

	if err := s.setDefaultIfUnset(ctx, userID, o.ID); err != nil {
		return Organization{}, err
	}

	s.publishMembership(changefeed.Insert, owner)
	return o, nil
}

func (s *Service) Get(ctx context.Context, orgID string) (Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return Organization{}, ErrInvalidInput
	}
	o, err := s.repo.GetOrganization(ctx, orgID)
	if err != nil {
		return Organization{}, notFound(err)
	}
	return o, nil
}

type UpdateInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (s *Service) Update(ctx context.Context, orgID, userID string, in UpdateInput) (Organization, error) {
	o, err := s.Get(ctx, orgID)
	if err != nil {
		return Organization{}, err
	}
	if err := s.requireManager(ctx, orgID, userID); err != nil {
		return Organization{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > maxNameLen {
			return Organization{}, fmt.Errorf("%w: name must be 1-%d chars", ErrInvalidInput, maxNameLen)
		}
		// el slug no cambia: lo usan links públicos
		o.Name = name
	}
	if in.Email != nil {
		email, err := normalizeOptionalEmail(*in.Email)
		if err != nil {
			return Organization{}, err
		}
		o.Email = email
	}
	if in.Phone != nil {
		o.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		o.Address = strings.TrimSpace(*in.Address)
	}
	o.UpdatedAt = s.now()

	if err := s.repo.UpdateOrganization(ctx, o); err != nil {
		return Organization{}, notFound(err)
	}
	return o, nil
}

// ListMine devuelve las orgs del usuario con su rol, la default primero.
func (s *Service) ListMine(ctx context.Context, userID string) ([]MyOrganization, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	ms, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	def := ""
	if p, err := s.repo.GetProfile(ctx, userID); err == nil {
		def = p.DefaultOrganizationID
	}

	out := make([]MyOrganization, 0, len(ms))
	for _, m := range ms {
		o, err := s.repo.GetOrganization(ctx, m.OrganizationID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, MyOrganization{Organization: o, Role: m.Role, IsDefault: o.ID == def})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Organization.Name < out[j].Organization.Name
	})
	return out, nil
}

// ListAll es para administradores de plataforma; el guard está en la ruta.
func (s *Service) ListAll(ctx context.Context) ([]Organization, error) {
	return s.repo.ListOrganizations(ctx)
}

func (s *Service) SetVerified(ctx context.Context, orgID string, verified bool) (Organization, error) {
	o, err := s.Get(ctx, orgID)
	if err != nil {
		return Organization{}, err
	}
	if o.Verified == verified {
		return o, nil
	}
	o.Verified = verified
	o.UpdatedAt = s.now()
	if err := s.repo.UpdateOrganization(ctx, o); err != nil {
		return Organization{}, notFound(err)
	}
	return o, nil
}

// ListMembers: solo miembros de la org ven a los demás miembros.
func (s *Service) ListMembers(ctx context.Context, orgID, userID string) ([]Membership, error) {
	role, err := s.MemberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if role == RoleNone {
		return nil, ErrForbidden
	}
	ms, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Role.Rank() != ms[j].Role.Rank() {
			return ms[i].Role.Rank() > ms[j].Role.Rank()
		}
		return ms[i].CreatedAt.Before(ms[j].CreatedAt)
	})
	return ms, nil
}

type InviteInput struct {
	OrganizationID string
	InviterUserID  string
	Email          string
	Role           Role
}

// Invite crea (o refresca) una invitación. Si ya hay una pending para el
// mismo email, se reusa con token y vencimiento nuevos.
func (s *Service) Invite(ctx context.Context, in InviteInput) (Invite, error) {
	orgID := strings.TrimSpace(in.OrganizationID)
	inviterID := strings.TrimSpace(in.InviterUserID)
	if orgID == "" || inviterID == "" {
		return Invite{}, ErrInvalidInput
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return Invite{}, err
	}
	role := Role(strings.ToLower(strings.TrimSpace(string(in.Role))))
	if role == RoleNone {
		role = RoleMember
	}
	if !role.Valid() {
		return Invite{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	org, err := s.Get(ctx, orgID)
	if err != nil {
		return Invite{}, err
	}
	inviterRole, err := s.MemberRole(ctx, orgID, inviterID)
	if err != nil {
		return Invite{}, err
	}
	if !inviterRole.CanManage() {
		return Invite{}, ErrForbidden
	}
	// nadie invita por encima de su propio rol (solo un owner invita owners)
	if role.Rank() > inviterRole.Rank() {
		return Invite{}, ErrForbidden
	}

	now := s.now()

	existing, matches, err := s.findPendingInvite(ctx, orgID, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Invite{}, err
	}

	var inv Invite
	if existing.ID != "" {
		s.revokeOtherInvites(ctx, existing.ID, matches, now)

		inv = existing
		inv.Role = role
		inv.Token = uuid.NewString()
		inv.InvitedBy = inviterID
		inv.ExpiresAt = now.Add(s.inviteTTL)
		inv.UpdatedAt = now
		if err := s.repo.UpdateInvite(ctx, inv); err != nil {
			return Invite{}, err
		}
	} else {
		inv = Invite{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			Email:          email,
			Role:           role,
			Token:          uuid.NewString(),
			InvitedBy:      inviterID,
			Status:         InviteStatusPending,
			ExpiresAt:      now.Add(s.inviteTTL),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repo.CreateInvite(ctx, inv); err != nil {
			return Invite{}, err
		}
	}

	if s.notifier != nil {
		if err := s.notifier.InviteCreated(ctx, org, inv); err != nil {
			s.log.Warn("invite notification failed", map[string]any{
				"organization_id": orgID,
				"invite_id":       inv.ID,
				"error":           err,
			})
		}
	}

	s.feed.Publish(changefeed.Change{
		Table:          "organization_invites",
		Type:           changefeed.Insert,
		Record:         inviteRecord(inv),
		OrganizationID: orgID,
		MinRole:        string(RoleAdmin),
		At:             now,
	})
	return inv, nil
}

// AcceptInvite valida token, vencimiento y email, y da de alta la membresía.
// Aceptar dos veces con el mismo usuario es idempotente.
func (s *Service) AcceptInvite(ctx context.Context, token, userID, email string) (Membership, error) {
	token = strings.TrimSpace(token)
	userID = strings.TrimSpace(userID)
	if token == "" || userID == "" {
		return Membership{}, ErrInvalidInput
	}

	inv, err := s.repo.GetInviteByToken(ctx, token)
	if err != nil {
		return Membership{}, notFound(err)
	}

	switch inv.Status {
	case InviteStatusAccepted:
		if inv.AcceptedBy == userID {
			m, err := s.repo.GetMembership(ctx, inv.OrganizationID, userID)
			if err == nil {
				return m, nil
			}
		}
		return Membership{}, fmt.Errorf("%w: invite already used", ErrBadState)
	case InviteStatusRevoked, InviteStatusExpired:
		return Membership{}, fmt.Errorf("%w: invite is %s", ErrBadState, inv.Status)
	}

	now := s.now()
	if !now.Before(inv.ExpiresAt) {
		inv.Status = InviteStatusExpired
		inv.UpdatedAt = now
		if err := s.repo.UpdateInvite(ctx, inv); err != nil {
			return Membership{}, err
		}
		return Membership{}, fmt.Errorf("%w: invite expired", ErrBadState)
	}

	if e := strings.ToLower(strings.TrimSpace(email)); e != "" && e != inv.Email {
		return Membership{}, ErrForbidden
	}

	m, err := s.repo.GetMembership(ctx, inv.OrganizationID, userID)
	change := changefeed.Update
	switch {
	case err == nil:
		if inv.Role.Rank() > m.Role.Rank() {
			m.Role = inv.Role
			m.UpdatedAt = now
		}
	case errors.Is(err, ErrNotFound):
		change = changefeed.Insert
		m = Membership{
			OrganizationID: inv.OrganizationID,
			UserID:         userID,
			Role:           inv.Role,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	default:
		return Membership{}, err
	}
	if err := s.repo.UpsertMembership(ctx, m); err != nil {
		return Membership{}, err
	}

	inv.Status = InviteStatusAccepted
	inv.AcceptedBy = userID
	inv.AcceptedAt = &now
	inv.UpdatedAt = now
	if err := s.repo.UpdateInvite(ctx, inv); err != nil {
		return Membership{}, err
	}

	if err := s.setDefaultIfUnset(ctx, userID, inv.OrganizationID); err != nil {
		return Membership{}, err
	}

	s.publishMembership(change, m)
	return m, nil
}

func (s *Service) RevokeInvite(ctx context.Context, inviteID, userID string) (Invite, error) {
	inviteID = strings.TrimSpace(inviteID)
	if inviteID == "" {
		return Invite{}, ErrInvalidInput
	}
	inv, err := s.repo.GetInvite(ctx, inviteID)
	if err != nil {
		return Invite{}, notFound(err)
	}
	if err := s.requireManager(ctx, inv.OrganizationID, userID); err != nil {
		return Invite{}, err
	}

	// Idempotente
	if inv.Status == InviteStatusRevoked {
		return inv, nil
	}
	if inv.Status != InviteStatusPending {
		return Invite{}, fmt.Errorf("%w: invite is %s", ErrBadState, inv.Status)
	}

	inv.Status = InviteStatusRevoked
	inv.UpdatedAt = s.now()
	if err := s.repo.UpdateInvite(ctx, inv); err != nil {
		return Invite{}, err
	}
	return inv, nil
}

func (s *Service) ListInvites(ctx context.Context, orgID, userID string) ([]Invite, error) {
	if err := s.requireManager(ctx, orgID, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListInvites(ctx, orgID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Service) ChangeRole(ctx context.Context, orgID, actorID, targetUserID string, role Role) (Membership, error) {
	role = Role(strings.ToLower(strings.TrimSpace(string(role))))
	if !role.Valid() {
		return Membership{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	actorRole, err := s.MemberRole(ctx, orgID, actorID)
	if err != nil {
		return Membership{}, err
	}
	if !actorRole.CanManage() {
		return Membership{}, ErrForbidden
	}

	target, err := s.repo.GetMembership(ctx, orgID, strings.TrimSpace(targetUserID))
	if err != nil {
		return Membership{}, notFound(err)
	}
	if target.Role.Rank() > actorRole.Rank() || role.Rank() > actorRole.Rank() {
		return Membership{}, ErrForbidden
	}
	if target.Role == role {
		return target, nil
	}
	if target.Role == RoleOwner {
		if err := s.ensureAnotherOwner(ctx, orgID, target.UserID); err != nil {
			return Membership{}, err
		}
	}

	target.Role = role
	target.UpdatedAt = s.now()
	if err := s.repo.UpsertMembership(ctx, target); err != nil {
		return Membership{}, err
	}
	s.publishMembership(changefeed.Update, target)
	return target, nil
}

// RemoveMember: owner/admin sacan a otros; cualquiera puede irse solo.
func (s *Service) RemoveMember(ctx context.Context, orgID, actorID, targetUserID string) error {
	actorID = strings.TrimSpace(actorID)
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return ErrInvalidInput
	}

	target, err := s.repo.GetMembership(ctx, orgID, targetUserID)
	if err != nil {
		return notFound(err)
	}

	if actorID != targetUserID {
		actorRole, err := s.MemberRole(ctx, orgID, actorID)
		if err != nil {
			return err
		}
		if !actorRole.CanManage() || target.Role.Rank() > actorRole.Rank() {
			return ErrForbidden
		}
	}
	if target.Role == RoleOwner {
		if err := s.ensureAnotherOwner(ctx, orgID, targetUserID); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteMembership(ctx, orgID, targetUserID); err != nil {
		return notFound(err)
	}

	p, err := s.repo.GetProfile(ctx, targetUserID)
	if err == nil && p.DefaultOrganizationID == orgID {
		p.DefaultOrganizationID = ""
		p.UpdatedAt = s.now()
		if err := s.repo.UpsertProfile(ctx, p); err != nil {
			return err
		}
	}

	s.publishMembership(changefeed.Delete, target)
	return nil
}

// SwitchDefault cambia la organización activa del usuario.
func (s *Service) SwitchDefault(ctx context.Context, userID, orgID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	orgID = strings.TrimSpace(orgID)
	if userID == "" || orgID == "" {
		return Profile{}, ErrInvalidInput
	}
	role, err := s.MemberRole(ctx, orgID, userID)
	if err != nil {
		return Profile{}, err
	}
	if role == RoleNone {
		return Profile{}, ErrForbidden
	}

	p := Profile{UserID: userID, DefaultOrganizationID: orgID, UpdatedAt: s.now()}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Current(ctx context.Context, userID string) (Current, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Current{}, ErrInvalidInput
	}
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Current{}, err
		}
		p = Profile{UserID: userID}
	}

	cur := Current{Profile: p}
	if p.DefaultOrganizationID == "" {
		return cur, nil
	}
	o, err := s.repo.GetOrganization(ctx, p.DefaultOrganizationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return cur, nil
		}
		return Current{}, err
	}
	role, err := s.MemberRole(ctx, o.ID, userID)
	if err != nil {
		return Current{}, err
	}
	if role == RoleNone {
		return cur, nil
	}
	cur.Organization = &o
	cur.Role = role
	return cur, nil
}

// MemberRole devuelve RoleNone (sin error) si el usuario no es miembro.
func (s *Service) MemberRole(ctx context.Context, orgID, userID string) (Role, error) {
	orgID = strings.TrimSpace(orgID)
	userID = strings.TrimSpace(userID)
	if orgID == "" || userID == "" {
		return RoleNone, nil
	}
	m, err := s.repo.GetMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RoleNone, nil
		}
		return RoleNone, err
	}
	return m.Role, nil
}

// MembershipsOf lista las membresías del usuario (realtime resuelve audiencias con esto).
func (s *Service) MembershipsOf(ctx context.Context, userID string) ([]Membership, error) {
	return s.repo.ListMembershipsByUser(ctx, strings.TrimSpace(userID))
}

// ExpireInvites marca como expired las invitaciones vencidas (job periódico).
func (s *Service) ExpireInvites(ctx context.Context) (int, error) {
	return s.repo.ExpireInvites(ctx, s.now())
}

func (s *Service) requireManager(ctx context.Context, orgID, userID string) error {
	role, err := s.MemberRole(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !role.CanManage() {
		return ErrForbidden
	}
	return nil
}

func (s *Service) ensureAnotherOwner(ctx context.Context, orgID, userID string) error {
	ms, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if m.Role == RoleOwner && m.UserID != userID {
			return nil
		}
	}
	return fmt.Errorf("%w: organization needs at least one owner", ErrBadState)
}

func (s *Service) setDefaultIfUnset(ctx context.Context, userID, orgID string) error {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err == nil && p.DefaultOrganizationID != "" {
		return nil
	}
	return s.repo.UpsertProfile(ctx, Profile{
		UserID:                userID,
		DefaultOrganizationID: orgID,
		UpdatedAt:             s.now(),
	})
}

func (s *Service) findPendingInvite(ctx context.Context, orgID, email string) (Invite, []Invite, error) {
	items, err := s.repo.ListInvites(ctx, orgID)
	if err != nil {
		return Invite{}, nil, err
	}

	matches := make([]Invite, 0)
	var winner Invite
	for _, inv := range items {
		if inv.Email != email || inv.Status != InviteStatusPending {
			continue
		}
		matches = append(matches, inv)
		if winner.ID == "" || inv.UpdatedAt.After(winner.UpdatedAt) {
			winner = inv
		}
	}
	if winner.ID == "" {
		return Invite{}, matches, ErrNotFound
	}
	return winner, matches, nil
}

func (s *Service) revokeOtherInvites(ctx context.Context, winnerID string, matches []Invite, now time.Time) {
	for _, inv := range matches {
		if inv.ID == winnerID {
			continue
		}
		inv.Status = InviteStatusRevoked
		inv.UpdatedAt = now
		if err := s.repo.UpdateInvite(ctx, inv); err != nil {
			s.log.Warn("revoke duplicate invite", map[string]any{"invite_id": inv.ID, "error": err})
		}
	}
}

func (s *Service) publishMembership(t changefeed.ChangeType, m Membership) {
	s.feed.Publish(changefeed.Change{
		Table: "organization_users",
		Type:  t,
		Record: map[string]any{
			"organization_id": m.OrganizationID,
			"user_id":         m.UserID,
			"role":            m.Role,
		},
		OrganizationID: m.OrganizationID,
		UserIDs:        []string{m.UserID},
		At:             s.now(),
	})
}

// inviteRecord no incluye el token; el email solo llega a owner/admin.
func inviteRecord(inv Invite) map[string]any {
	return map[string]any{
		"id":              inv.ID,
		"organization_id": inv.OrganizationID,
		"email":           inv.Email,
		"role":            inv.Role,
		"status":          inv.Status,
		"expires_at":      inv.ExpiresAt,
	}
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return err
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	s := slugInvalid.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > 48 {
		s = strings.TrimRight(s[:48], "-")
	}
	if s == "" {
		s = "org"
	}
	return s
}

func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)
	candidate := base
	for i := 2; i <= 20; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func normalizeEmail(raw string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(raw))
	if e == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return e, nil
}

func normalizeOptionalEmail(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return normalizeEmail(raw)
}
