package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
)

// In-memory stand-ins for the gorm repositories and external gateways.

type fakeGroupRepo struct {
	groups  map[uuid.UUID]*dbm.Group
	members *fakeMemberRepo
}

func newFakeGroupRepo(members *fakeMemberRepo) *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*dbm.Group), members: members}
}

func (r *fakeGroupRepo) CreateWithOwner(ctx context.Context, group *dbm.Group, owner *dbm.GroupMember) error {
	for _, g := range r.groups {
		if g.Slug == group.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	copied := *group
	r.groups[group.ID] = &copied

	owner.GroupID = group.ID
	return r.members.Create(ctx, owner)
}

func (r *fakeGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Group, error) {
	if g, ok := r.groups[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeGroupRepo) FindBySlug(ctx context.Context, slug string) (*dbm.Group, error) {
	for _, g := range r.groups {
		if g.Slug == slug {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) Save(ctx context.Context, group *dbm.Group) error {
	copied := *group
	r.groups[group.ID] = &copied
	return nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*dbm.GroupMember
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID]*dbm.GroupMember)}
}

func (r *fakeMemberRepo) FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*dbm.GroupMember, error) {
	for _, m := range r.members {
		if m.GroupID == groupID && m.UserID != nil && *m.UserID == userID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, memberID uuid.UUID) (*dbm.GroupMember, error) {
	if m, ok := r.members[memberID]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindInviteByEmail(ctx context.Context, groupID uuid.UUID, email string) (*dbm.GroupMember, error) {
	for _, m := range r.members {
		if m.GroupID == groupID && m.InviteEmail == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.GroupMember, error) {
	var list []dbm.GroupMember
	for _, m := range r.members {
		if m.GroupID == groupID {
			list = append(list, *m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt < list[j].CreatedAt })
	return list, nil
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *dbm.GroupMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Save(ctx context.Context, member *dbm.GroupMember) error {
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, memberID uuid.UUID) error {
	delete(r.members, memberID)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*dbm.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*dbm.User)}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*dbm.User, error) {
	for _, u := range r.users {
		if u.ExternalID == externalID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*dbm.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *dbm.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *dbm.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeFundraiserRepo struct {
	fundraisers map[uuid.UUID]*dbm.Fundraiser
	links       map[uuid.UUID]*dbm.FundraiserLink
	gallery     map[uuid.UUID]*dbm.GalleryItem
	donations   *fakeDonationRepo
}

func newFakeFundraiserRepo(donations *fakeDonationRepo) *fakeFundraiserRepo {
	return &fakeFundraiserRepo{
		fundraisers: make(map[uuid.UUID]*dbm.Fundraiser),
		links:       make(map[uuid.UUID]*dbm.FundraiserLink),
		gallery:     make(map[uuid.UUID]*dbm.GalleryItem),
		donations:   donations,
	}
}

func (r *fakeFundraiserRepo) Create(ctx context.Context, f *dbm.Fundraiser) error {
	for _, existing := range r.fundraisers {
		if existing.Slug == f.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	copied := *f
	r.fundraisers[f.ID] = &copied
	return nil
}

func (r *fakeFundraiserRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Fundraiser, error) {
	if f, ok := r.fundraisers[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeFundraiserRepo) FindBySlug(ctx context.Context, slug string) (*dbm.Fundraiser, error) {
	for _, f := range r.fundraisers {
		if f.Slug == slug {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFundraiserRepo) Save(ctx context.Context, f *dbm.Fundraiser) error {
	copied := *f
	r.fundraisers[f.ID] = &copied
	return nil
}

func (r *fakeFundraiserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.fundraisers, id)
	return nil
}

func (r *fakeFundraiserRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.Fundraiser, error) {
	var list []dbm.Fundraiser
	for _, f := range r.fundraisers {
		if f.GroupID == groupID {
			list = append(list, *f)
		}
	}
	return list, nil
}

func (r *fakeFundraiserRepo) ListPublished(ctx context.Context, category string, page, pageSize int) ([]dbm.Fundraiser, error) {
	var list []dbm.Fundraiser
	for _, f := range r.fundraisers {
		if f.Status != dbm.FundraiserStatusPublished || !f.IsPublic {
			continue
		}
		if category != "" && string(f.Category) != category {
			continue
		}
		list = append(list, *f)
	}
	return list, nil
}

func (r *fakeFundraiserRepo) CountBlockingDonations(ctx context.Context, fundraiserID uuid.UUID) (int64, error) {
	var count int64
	for _, d := range r.donations.donations {
		if d.FundraiserID == fundraiserID &&
			(d.Status == dbm.DonationStatusPending || d.Status == dbm.DonationStatusCompleted) {
			count++
		}
	}
	return count, nil
}

func (r *fakeFundraiserRepo) CreateLink(ctx context.Context, link *dbm.FundraiserLink) error {
	for _, existing := range r.links {
		if existing.Alias == link.Alias {
			return gorm.ErrDuplicatedKey
		}
	}
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	copied := *link
	r.links[link.ID] = &copied
	return nil
}

func (r *fakeFundraiserRepo) FindLinkByAlias(ctx context.Context, alias string) (*dbm.FundraiserLink, error) {
	for _, link := range r.links {
		if link.Alias == alias {
			copied := *link
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFundraiserRepo) AddGalleryItem(ctx context.Context, item *dbm.GalleryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	r.gallery[item.ID] = &copied
	return nil
}

func (r *fakeFundraiserRepo) FindGalleryItem(ctx context.Context, itemID uuid.UUID) (*dbm.GalleryItem, error) {
	if item, ok := r.gallery[itemID]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeFundraiserRepo) DeleteGalleryItem(ctx context.Context, itemID uuid.UUID) error {
	delete(r.gallery, itemID)
	return nil
}

func (r *fakeFundraiserRepo) ListGallery(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.GalleryItem, error) {
	var items []dbm.GalleryItem
	for _, item := range r.gallery {
		if item.FundraiserID == fundraiserID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

type fakeMilestoneRepo struct {
	milestones  map[uuid.UUID]*dbm.Milestone
	fundraisers *fakeFundraiserRepo
	txErr       error
}

func newFakeMilestoneRepo(fundraisers *fakeFundraiserRepo) *fakeMilestoneRepo {
	return &fakeMilestoneRepo{
		milestones:  make(map[uuid.UUID]*dbm.Milestone),
		fundraisers: fundraisers,
	}
}

func (r *fakeMilestoneRepo) Create(ctx context.Context, m *dbm.Milestone) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copied := *m
	r.milestones[m.ID] = &copied
	return nil
}

// CreateWithGoal is all-or-nothing like the transaction it stands in for.
func (r *fakeMilestoneRepo) CreateWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error {
	if r.txErr != nil {
		return r.txErr
	}
	if err := r.Create(ctx, m); err != nil {
		return err
	}
	if raised != nil {
		return r.fundraisers.Save(ctx, raised)
	}
	return nil
}

func (r *fakeMilestoneRepo) SaveWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error {
	if r.txErr != nil {
		return r.txErr
	}
	if err := r.Save(ctx, m); err != nil {
		return err
	}
	if raised != nil {
		return r.fundraisers.Save(ctx, raised)
	}
	return nil
}

func (r *fakeMilestoneRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Milestone, error) {
	if m, ok := r.milestones[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMilestoneRepo) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.Milestone, error) {
	var list []dbm.Milestone
	for _, m := range r.milestones {
		if m.FundraiserID == fundraiserID {
			list = append(list, *m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StepNumber < list[j].StepNumber })
	return list, nil
}

func (r *fakeMilestoneRepo) SumAmounts(ctx context.Context, fundraiserID uuid.UUID) (float64, error) {
	var sum float64
	for _, m := range r.milestones {
		if m.FundraiserID == fundraiserID {
			sum += m.Amount
		}
	}
	return sum, nil
}

func (r *fakeMilestoneRepo) Save(ctx context.Context, m *dbm.Milestone) error {
	copied := *m
	r.milestones[m.ID] = &copied
	return nil
}

func (r *fakeMilestoneRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.milestones, id)
	return nil
}

type fakeDonationRepo struct {
	donations map[uuid.UUID]*dbm.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[uuid.UUID]*dbm.Donation)}
}

func (r *fakeDonationRepo) Create(ctx context.Context, d *dbm.Donation) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	copied := *d
	r.donations[d.ID] = &copied
	return nil
}

func (r *fakeDonationRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Donation, error) {
	if d, ok := r.donations[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeDonationRepo) FindByIntentID(ctx context.Context, intentID string) (*dbm.Donation, error) {
	for _, d := range r.donations {
		if d.StripeIntentID != nil && *d.StripeIntentID == intentID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDonationRepo) SetIntentID(ctx context.Context, donationID uuid.UUID, intentID string) error {
	d, ok := r.donations[donationID]
	if !ok {
		return errors.New("donation not found")
	}
	d.StripeIntentID = &intentID
	return nil
}

func (r *fakeDonationRepo) SetStatusIfPending(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus, receipt []byte) (bool, error) {
	d, ok := r.donations[donationID]
	if !ok || d.Status != dbm.DonationStatusPending {
		return false, nil
	}
	d.Status = status
	if receipt != nil {
		d.Receipt = datatypes.JSON(receipt)
	}
	return true, nil
}

func (r *fakeDonationRepo) SetStatus(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus) error {
	d, ok := r.donations[donationID]
	if !ok {
		return errors.New("donation not found")
	}
	d.Status = status
	return nil
}

func (r *fakeDonationRepo) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID, completedOnly bool) ([]dbm.Donation, error) {
	var list []dbm.Donation
	for _, d := range r.donations {
		if d.FundraiserID != fundraiserID {
			continue
		}
		if completedOnly && d.Status != dbm.DonationStatusCompleted {
			continue
		}
		list = append(list, *d)
	}
	return list, nil
}

func (r *fakeDonationRepo) AggregateCompleted(ctx context.Context, fundraiserIDs []uuid.UUID) ([]repositories.ProgressRow, error) {
	byID := make(map[uuid.UUID]*repositories.ProgressRow)
	for _, id := range fundraiserIDs {
		byID[id] = &repositories.ProgressRow{FundraiserID: id}
	}
	for _, d := range r.donations {
		row, ok := byID[d.FundraiserID]
		if !ok || d.Status != dbm.DonationStatusCompleted {
			continue
		}
		row.TotalRaised += d.Amount
		row.DonationCount++
	}
	var rows []repositories.ProgressRow
	for _, row := range byID {
		if row.DonationCount > 0 {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

type fakeGateway struct {
	intentErr    error
	lastIntent   IntentParams
	accountSeq   int
	connectedErr error
	webhookEvent *stripe.Event
	webhookErr   error
}

func (g *fakeGateway) CreateConnectedAccount(ctx context.Context, email string) (string, error) {
	if g.connectedErr != nil {
		return "", g.connectedErr
	}
	g.accountSeq++
	return "acct_test", nil
}

func (g *fakeGateway) OnboardingLink(ctx context.Context, accountID string) (string, error) {
	return "https://connect.example/" + accountID, nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, p IntentParams) (*IntentResult, error) {
	g.lastIntent = p
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	return &IntentResult{IntentID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signature string) (*stripe.Event, error) {
	if g.webhookErr != nil {
		return nil, g.webhookErr
	}
	if g.webhookEvent == nil {
		return nil, errors.New("no event configured")
	}
	return g.webhookEvent, nil
}

type fakeNotifications struct {
	sent []dbm.NotificationType
}

func (f *fakeNotifications) Notify(ctx context.Context, userID uuid.UUID, kind dbm.NotificationType, message string, payload map[string]any) {
	f.sent = append(f.sent, kind)
}

func (f *fakeNotifications) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

type fakeUploads struct {
	registered map[string]*dbm.Upload
}

func newFakeUploads() *fakeUploads {
	return &fakeUploads{registered: make(map[string]*dbm.Upload)}
}

func (f *fakeUploads) Register(ctx context.Context, publicID string, userID uuid.UUID) (*dbm.Upload, error) {
	if existing, ok := f.registered[publicID]; ok {
		return existing, nil
	}
	upload := &dbm.Upload{
		PublicID:   publicID,
		URL:        "https://assets.example/" + publicID,
		UploadedBy: userID,
	}
	upload.ID = uuid.New()
	f.registered[publicID] = upload
	return upload, nil
}

func (f *fakeUploads) Delete(ctx context.Context, uploadID, callerID uuid.UUID) error {
	return nil
}

// fixture assembles the full service graph over the fakes.
type fixture struct {
	users       *fakeUserRepo
	members     *fakeMemberRepo
	groups      *fakeGroupRepo
	donations   *fakeDonationRepo
	fundraisers *fakeFundraiserRepo
	milestones  *fakeMilestoneRepo
	gateway     *fakeGateway
	notified    *fakeNotifications
	uploads     *fakeUploads

	memberSvc     MemberServiceInterface
	groupSvc      GroupServiceInterface
	fundraiserSvc FundraiserServiceInterface
	milestoneSvc  MilestoneServiceInterface
	donationSvc   DonationServiceInterface
	progressSvc   ProgressServiceInterface
	paymentSvc    PaymentServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		users:     newFakeUserRepo(),
		members:   newFakeMemberRepo(),
		donations: newFakeDonationRepo(),
		gateway:   &fakeGateway{},
		notified:  &fakeNotifications{},
		uploads:   newFakeUploads(),
	}
	f.groups = newFakeGroupRepo(f.members)
	f.fundraisers = newFakeFundraiserRepo(f.donations)
	f.milestones = newFakeMilestoneRepo(f.fundraisers)

	f.memberSvc = NewMemberService(f.groups, f.members, f.users, f.notified)
	f.groupSvc = NewGroupService(f.groups, f.memberSvc)
	f.progressSvc = NewProgressService(f.donations)
	f.fundraiserSvc = NewFundraiserService(f.fundraisers, f.milestones, f.memberSvc, f.uploads, f.progressSvc)
	f.milestoneSvc = NewMilestoneService(f.fundraisers, f.milestones, f.memberSvc, f.notified)
	f.donationSvc = NewDonationService(f.fundraisers, f.groups, f.donations, f.gateway, f.memberSvc, 5)
	f.paymentSvc = NewPaymentService(f.groups, f.donations, f.fundraisers, f.gateway, f.memberSvc, f.notified)
	return f
}

// seedUser registers a user row directly.
func (f *fixture) seedUser(name string) *dbm.User {
	user := &dbm.User{
		ExternalID:  "ext_" + name,
		Email:       name + "@example.com",
		DisplayName: name,
		AccountType: dbm.AccountTypeIndividual,
	}
	user.ID = uuid.New()
	_ = f.users.Create(context.Background(), user)
	return user
}

// seedGroup creates a group with the given owner and connects it when asked.
func (f *fixture) seedGroup(owner *dbm.User, connected bool) *dbm.Group {
	group := &dbm.Group{
		Name:    "Group of " + owner.DisplayName,
		Slug:    "group-" + owner.DisplayName,
		Type:    dbm.GroupTypeTeam,
		OwnerID: owner.ID,
	}
	group.ID = uuid.New()
	if connected {
		acct := "acct_" + owner.DisplayName
		group.StripeAccountID = &acct
	}
	f.groups.groups[group.ID] = group

	member := &dbm.GroupMember{
		GroupID: group.ID,
		UserID:  &owner.ID,
		Role:    dbm.RoleOwner,
		Status:  dbm.MemberStatusActive,
	}
	_ = f.members.Create(context.Background(), member)
	return group
}

// seedMember adds an active member with the given role.
func (f *fixture) seedMember(group *dbm.Group, user *dbm.User, role dbm.MemberRole) *dbm.GroupMember {
	member := &dbm.GroupMember{
		GroupID: group.ID,
		UserID:  &user.ID,
		Role:    role,
		Status:  dbm.MemberStatusActive,
	}
	_ = f.members.Create(context.Background(), member)
	return member
}

func uuidMustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

// seedFundraiser creates a draft fundraiser for the group.
func (f *fixture) seedFundraiser(group *dbm.Group, goal float64) *dbm.Fundraiser {
	fundraiser := &dbm.Fundraiser{
		GroupID:    group.ID,
		Slug:       "fund-" + uuid.New().String()[:8],
		Title:      "Test fundraiser",
		Category:   dbm.CategoryCommunity,
		GoalAmount: goal,
		Currency:   "usd",
		Status:     dbm.FundraiserStatusDraft,
	}
	fundraiser.ID = uuid.New()
	f.fundraisers.fundraisers[fundraiser.ID] = fundraiser
	return fundraiser
}
