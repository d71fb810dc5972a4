package services

import (
	"context"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// In-memory stand-ins for the repositories. They enforce the same keys and
// return the same error values as the SQL implementations.

type fakeStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	if fh == nil {
		return "", nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := subPath + "/" + fh.Filename
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) PublicPath(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

func upload(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

type fakeEmail struct {
	to   string
	code string
	err  error
}

func (f *fakeEmail) SendPasswordResetOTP(_ context.Context, toEmail, _ string, code string) error {
	f.to, f.code = toEmail, code
	return f.err
}

// directory

type fakeDirectory struct {
	universities []models.University
	campuses     []models.Campus
	courses      []models.Course
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		universities: []models.University{{ID: 1, Name: "X"}, {ID: 2, Name: "Other"}},
		campuses:     []models.Campus{{ID: 10, UniversityID: 1, Name: "Y"}, {ID: 20, UniversityID: 2, Name: "Y"}},
		courses:      []models.Course{{ID: 100, UniversityID: 1, CampusID: 10, Name: "Z"}},
	}
}

func (f *fakeDirectory) ListUniversities(context.Context) ([]models.University, error) {
	return f.universities, nil
}

func (f *fakeDirectory) ListCampuses(_ context.Context, universityID *int64) ([]models.Campus, error) {
	out := []models.Campus{}
	for _, c := range f.campuses {
		if universityID == nil || c.UniversityID == *universityID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) ListCourses(_ context.Context, campusID, universityID *int64) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range f.courses {
		if (campusID == nil || c.CampusID == *campusID) && (universityID == nil || c.UniversityID == *universityID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) FindUniversityIDByName(_ context.Context, name string) (int64, error) {
	for _, u := range f.universities {
		if u.Name == name {
			return u.ID, nil
		}
	}
	return 0, apperrors.ErrInvalidUniversity
}

func (f *fakeDirectory) FindCampusIDByName(_ context.Context, universityID int64, name string) (int64, error) {
	for _, c := range f.campuses {
		if c.UniversityID == universityID && c.Name == name {
			return c.ID, nil
		}
	}
	return 0, apperrors.ErrInvalidCampus
}

func (f *fakeDirectory) FindCourseIDByName(_ context.Context, campusID int64, name string) (int64, error) {
	for _, c := range f.courses {
		if c.CampusID == campusID && c.Name == name {
			return c.ID, nil
		}
	}
	return 0, apperrors.ErrInvalidCourse
}

func (f *fakeDirectory) CampusBelongsTo(_ context.Context, campusID, universityID int64) (bool, error) {
	for _, c := range f.campuses {
		if c.ID == campusID && c.UniversityID == universityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) CourseBelongsTo(_ context.Context, courseID, campusID int64) (bool, error) {
	for _, c := range f.courses {
		if c.ID == courseID && c.CampusID == campusID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) UniversityExists(_ context.Context, id int64) (bool, error) {
	for _, u := range f.universities {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// users, tokens and otps

type fakeUsers struct {
	nextID   int64
	users    map[int64]*models.User
	profiles map[int64]*models.Profile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*models.User{}, profiles: map[int64]*models.Profile{}}
}

// add inserts a user directly, bypassing password hashing
func (f *fakeUsers) add(username string) *models.User {
	f.nextID++
	u := &models.User{ID: f.nextID, Username: username, Email: username + "@x.com", IsActive: true}
	f.users[u.ID] = u
	f.profiles[u.ID] = &models.Profile{ID: u.ID, UserID: u.ID, UniversityID: 1, CampusID: 10, CourseID: 100}
	return u
}

func (f *fakeUsers) CreateUserWithProfile(_ context.Context, user *models.User, profile *models.Profile) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameExists
		}
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailExists
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	p := *profile
	p.ID, p.UserID = stored.ID, stored.ID
	f.profiles[stored.ID] = &p
	return stored.ID, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, u := range f.users {
		out = append(out, models.UserSummary{ID: u.ID, Username: u.Username})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) GetProfileByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Profile not found")
	}
	c := *p
	c.Username, c.Email = f.users[userID].Username, f.users[userID].Email
	c.UniversityName, c.CampusName, c.CourseName = "X", "Y", "Z"
	return &c, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID int64, update repositories.ProfileUpdate) error {
	p, ok := f.profiles[userID]
	if !ok {
		return apperrors.NewResourceNotFoundError("User profile not found")
	}
	if update.Username != nil {
		for id, u := range f.users {
			if id != userID && u.Username == *update.Username {
				return apperrors.ErrUsernameExists
			}
		}
		f.users[userID].Username = *update.Username
	}
	if update.PhoneNumber != nil {
		p.PhoneNumber = *update.PhoneNumber
	}
	if update.ProfilePicture != nil {
		p.ProfilePicture = update.ProfilePicture
	}
	return nil
}

type fakeTokens struct {
	tokens map[string]*models.AuthToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*models.AuthToken{}}
}

func (f *fakeTokens) CreateToken(_ context.Context, tokenID string, userID int64, expiresAt *time.Time) error {
	f.tokens[tokenID] = &models.AuthToken{TokenID: tokenID, UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return nil
}

func (f *fakeTokens) GetToken(_ context.Context, tokenID string) (*models.AuthToken, error) {
	t, ok := f.tokens[tokenID]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokens) DeleteToken(_ context.Context, tokenID string) error {
	if _, ok := f.tokens[tokenID]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(f.tokens, tokenID)
	return nil
}

type fakeOTPs struct {
	otps   map[int64]*models.OTP
	users  *fakeUsers
	tokens *fakeTokens
	now    func() time.Time
}

func (f *fakeOTPs) Upsert(_ context.Context, userID int64, code string) error {
	f.otps[userID] = &models.OTP{UserID: userID, Code: code, CreatedAt: f.now()}
	return nil
}

func (f *fakeOTPs) Get(_ context.Context, userID int64) (*models.OTP, error) {
	o, ok := f.otps[userID]
	if !ok {
		return nil, apperrors.ErrOTPInvalid
	}
	c := *o
	return &c, nil
}

func (f *fakeOTPs) MarkVerified(_ context.Context, userID int64, code string) (bool, error) {
	o, ok := f.otps[userID]
	if !ok || o.Code != code || o.Verified {
		return false, nil
	}
	o.Verified = true
	return true, nil
}

func (f *fakeOTPs) ConsumeAndSetPassword(_ context.Context, userID int64, passwordHash string) error {
	o, ok := f.otps[userID]
	if !ok || !o.Verified {
		return apperrors.ErrOTPNotVerified
	}
	delete(f.otps, userID)
	f.users.users[userID].Password = passwordHash
	for id, t := range f.tokens.tokens {
		if t.UserID == userID {
			delete(f.tokens.tokens, id)
		}
	}
	return nil
}

// groups and messaging

type followKey struct{ user, group int64 }

type fakeGroups struct {
	nextID      int64
	groups      map[int64]*models.Group
	followers   map[followKey]bool
	memberships map[followKey]*models.Membership
}

func newFakeGroups() *fakeGroups {
	return &fakeGroups{
		groups:      map[int64]*models.Group{},
		followers:   map[followKey]bool{},
		memberships: map[followKey]*models.Membership{},
	}
}

func (f *fakeGroups) count(groupID int64) int {
	n := 0
	for k := range f.followers {
		if k.group == groupID {
			n++
		}
	}
	return n
}

func (f *fakeGroups) Create(_ context.Context, g *models.Group) error {
	f.nextID++
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	c := *g
	f.groups[g.ID] = &c
	return nil
}

func (f *fakeGroups) List(_ context.Context, communityID *int64) ([]models.Group, error) {
	out := []models.Group{}
	for id := int64(1); id <= f.nextID; id++ {
		g, ok := f.groups[id]
		if !ok || (communityID != nil && g.CommunityID != *communityID) {
			continue
		}
		c := *g
		c.FollowerCount = f.count(id)
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeGroups) GetByID(_ context.Context, id int64) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	c := *g
	c.FollowerCount = f.count(id)
	return &c, nil
}

func (f *fakeGroups) ToggleFollow(_ context.Context, userID, groupID int64) (*models.FollowState, error) {
	k := followKey{userID, groupID}
	if f.followers[k] {
		delete(f.followers, k)
	} else {
		f.followers[k] = true
	}
	return &models.FollowState{IsFollowing: f.followers[k], FollowerCount: f.count(groupID)}, nil
}

func (f *fakeGroups) IsFollower(_ context.Context, userID, groupID int64) (bool, error) {
	return f.followers[followKey{userID, groupID}], nil
}

func (f *fakeGroups) Join(_ context.Context, userID, groupID int64) (*models.Membership, error) {
	k := followKey{userID, groupID}
	if _, ok := f.memberships[k]; ok {
		return nil, repositories.ErrAlreadyMember
	}
	m := &models.Membership{ID: int64(len(f.memberships) + 1), UserID: userID, GroupID: groupID, JoinedAt: time.Now()}
	f.memberships[k] = m
	c := *m
	return &c, nil
}

func (f *fakeGroups) Leave(_ context.Context, userID, groupID int64) error {
	k := followKey{userID, groupID}
	if _, ok := f.memberships[k]; !ok {
		return repositories.ErrNotMember
	}
	delete(f.memberships, k)
	return nil
}

func (f *fakeGroups) GetMembership(_ context.Context, userID, groupID int64) (*models.Membership, error) {
	m, ok := f.memberships[followKey{userID, groupID}]
	if !ok {
		return nil, repositories.ErrMembershipAbsent
	}
	c := *m
	return &c, nil
}

func (f *fakeGroups) Promote(_ context.Context, userID, groupID int64) (*models.Membership, error) {
	m, ok := f.memberships[followKey{userID, groupID}]
	if !ok {
		return nil, repositories.ErrMembershipAbsent
	}
	m.IsAdmin = true
	c := *m
	return &c, nil
}

type fakeGroupMessages struct {
	messages []models.GroupMessage
}

func (f *fakeGroupMessages) Create(_ context.Context, m *models.GroupMessage) error {
	m.ID = int64(len(f.messages) + 1)
	m.Timestamp = time.Now()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeGroupMessages) ListByGroup(_ context.Context, groupID int64) ([]models.GroupMessage, error) {
	out := []models.GroupMessage{}
	for _, m := range f.messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeGroupMessages) MarkRead(_ context.Context, id int64) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Read = true
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("Message not found")
}

type blockKey struct{ blocker, blocked int64 }

type fakeDirectMessages struct {
	nextID   int64
	clock    time.Time
	messages []models.DirectMessage
	blocks   map[blockKey]bool
	users    *fakeUsers
}

func newFakeDirectMessages(users *fakeUsers) *fakeDirectMessages {
	return &fakeDirectMessages{blocks: map[blockKey]bool{}, users: users, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeDirectMessages) Create(_ context.Context, m *models.DirectMessage) error {
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	m.ID, m.Timestamp = f.nextID, f.clock
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeDirectMessages) Thread(_ context.Context, a, b int64) ([]models.DirectMessage, error) {
	out := []models.DirectMessage{}
	for _, m := range f.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDirectMessages) ChatPartners(_ context.Context, userID int64) ([]models.ChatPartner, error) {
	seen := map[int64]bool{}
	out := []models.ChatPartner{}
	for _, m := range f.messages {
		var other int64
		switch userID {
		case m.SenderID:
			other = m.RecipientID
		case m.RecipientID:
			other = m.SenderID
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, models.ChatPartner{UserID: other, Username: f.users.users[other].Username})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeDirectMessages) GetByID(_ context.Context, id int64) (*models.DirectMessage, error) {
	for _, m := range f.messages {
		if m.ID == id {
			c := m
			return &c, nil
		}
	}
	return nil, repositories.ErrDirectMessageNotFound
}

func (f *fakeDirectMessages) Delete(_ context.Context, id int64) error {
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return repositories.ErrDirectMessageNotFound
}

func (f *fakeDirectMessages) Block(_ context.Context, blockerID, blockedID int64) (bool, error) {
	k := blockKey{blockerID, blockedID}
	if f.blocks[k] {
		return false, nil
	}
	f.blocks[k] = true
	kept := f.messages[:0]
	for _, m := range f.messages {
		pair := (m.SenderID == blockerID && m.RecipientID == blockedID) || (m.SenderID == blockedID && m.RecipientID == blockerID)
		if !pair {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return true, nil
}

func (f *fakeDirectMessages) Unblock(_ context.Context, blockerID, blockedID int64) (bool, error) {
	k := blockKey{blockerID, blockedID}
	existed := f.blocks[k]
	delete(f.blocks, k)
	return existed, nil
}

func (f *fakeDirectMessages) IsBlocked(_ context.Context, blockerID, blockedID int64) (bool, error) {
	return f.blocks[blockKey{blockerID, blockedID}], nil
}

// marketplace

type fakeProducts struct {
	nextID   int64
	products map[int64]*models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: map[int64]*models.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	c := *p
	f.products[p.ID] = &c
	return nil
}

func (f *fakeProducts) List(_ context.Context, category *models.ProductCategory) ([]models.Product, error) {
	out := []models.Product{}
	for id := f.nextID; id >= 1; id-- {
		p, ok := f.products[id]
		if ok && (category == nil || p.Category == *category) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakeProducts) Update(_ context.Context, id int64, ch repositories.ProductChanges) error {
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrProductNotFound
	}
	if ch.Category != nil {
		p.Category = *ch.Category
	}
	if ch.Title != nil {
		p.Title = *ch.Title
	}
	for i, v := range ch.Features {
		if v != nil {
			p.Features[i] = *v
		}
	}
	if ch.Warranty != nil {
		p.Warranty = *ch.Warranty
	}
	if ch.Price != nil {
		p.Price = *ch.Price
	}
	for i, v := range ch.Images {
		if v != nil {
			p.Images[i] = v
		}
	}
	if ch.IsSold != nil {
		p.IsSold = *ch.IsSold
	}
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}
