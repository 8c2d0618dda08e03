package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory repositories.UserRepository with the same
// uniqueness behavior as the real one.
type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	count := 0
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeGameRepo struct {
	games  map[int]*models.Game
	nextID int
	today  string
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[int]*models.Game), nextID: 1}
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	game.ID = r.nextID
	r.nextID++
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	clone := *game
	return &clone, nil
}

func (r *fakeGameRepo) GetByIDWithAssignments(ctx context.Context, id int) (*models.Game, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeGameRepo) List(ctx context.Context) ([]models.Game, error) {
	ids := make([]int, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	games := make([]models.Game, 0, len(ids))
	for _, id := range ids {
		games = append(games, *r.games[id])
	}
	return games, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) Count(ctx context.Context) (int, error) {
	return len(r.games), nil
}

func (r *fakeGameRepo) CountUpcoming(ctx context.Context) (int, error) {
	count := 0
	for _, game := range r.games {
		if game.GameDate >= r.today {
			count++
		}
	}
	return count, nil
}

type fakeAssignmentRepo struct {
	assignments map[int]*models.Assignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[int]*models.Assignment), nextID: 1}
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	for _, existing := range r.assignments {
		if existing.GameID == assignment.GameID && existing.UserID == assignment.UserID {
			return repositories.ErrAssignmentConflict
		}
	}
	assignment.ID = r.nextID
	r.nextID++
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	clone := *assignment
	r.assignments[assignment.ID] = &clone
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repositories.ErrAssignmentNotFound
	}
	clone := *assignment
	return &clone, nil
}

func (r *fakeAssignmentRepo) GetByGameAndUser(ctx context.Context, gameID, userID int) (*models.Assignment, error) {
	for _, assignment := range r.assignments {
		if assignment.GameID == gameID && assignment.UserID == userID {
			clone := *assignment
			return &clone, nil
		}
	}
	return nil, repositories.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) UpdateStatus(ctx context.Context, id int, status models.AssignmentStatus) error {
	assignment, ok := r.assignments[id]
	if !ok {
		return repositories.ErrAssignmentNotFound
	}
	assignment.Status = status
	assignment.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.assignments[id]; !ok {
		return repositories.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) ListByUser(ctx context.Context, userID int) ([]models.Assignment, error) {
	ids := make([]int, 0, len(r.assignments))
	for id, assignment := range r.assignments {
		if assignment.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	assignments := make([]models.Assignment, 0, len(ids))
	for _, id := range ids {
		assignments = append(assignments, *r.assignments[id])
	}
	return assignments, nil
}

func (r *fakeAssignmentRepo) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int, error) {
	count := 0
	for _, assignment := range r.assignments {
		if assignment.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeAvailabilityRepo struct {
	entries map[int]*models.Availability
	nextID  int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{entries: make(map[int]*models.Availability), nextID: 1}
}

func (r *fakeAvailabilityRepo) Create(ctx context.Context, availability *models.Availability) error {
	for _, existing := range r.entries {
		if existing.UserID == availability.UserID && existing.Date == availability.Date {
			return repositories.ErrAvailabilityConflict
		}
	}
	availability.ID = r.nextID
	r.nextID++
	availability.CreatedAt = time.Now()
	availability.UpdatedAt = availability.CreatedAt
	clone := *availability
	r.entries[availability.ID] = &clone
	return nil
}

func (r *fakeAvailabilityRepo) GetByUserAndDate(ctx context.Context, userID int, date string) (*models.Availability, error) {
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Date == date {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, repositories.ErrAvailabilityNotFound
}

func (r *fakeAvailabilityRepo) UpdateType(ctx context.Context, id int, availabilityType models.AvailabilityType) error {
	entry, ok := r.entries[id]
	if !ok {
		return repositories.ErrAvailabilityNotFound
	}
	entry.Type = availabilityType
	entry.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAvailabilityRepo) ListByUser(ctx context.Context, userID int) ([]models.Availability, error) {
	entries := make([]models.Availability, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

func (r *fakeAvailabilityRepo) ListRange(ctx context.Context, startDate, endDate string) ([]models.Availability, error) {
	entries := make([]models.Availability, 0)
	for _, entry := range r.entries {
		if entry.Date >= startDate && entry.Date <= endDate {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

type fakeNotificationRepo struct {
	notifications map[int]*models.Notification
	nextID        int
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[int]*models.Notification), nextID: 1}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	notification.ID = r.nextID
	r.nextID++
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	ids := make([]int, 0, len(r.notifications))
	for id, notification := range r.notifications {
		if notification.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	notifications := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		notifications = append(notifications, *r.notifications[id])
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id int) error {
	notification, ok := r.notifications[id]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	notification.Read = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int) error {
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.notifications[id]; !ok {
		return repositories.ErrNotificationNotFound
	}
	delete(r.notifications, id)
	return nil
}

// recordingNotifier captures AssignmentCreated calls.
type recordingNotifier struct {
	assignments []*models.Assignment
	games       []*models.Game
}

func (n *recordingNotifier) AssignmentCreated(ctx context.Context, assignment *models.Assignment, game *models.Game) {
	n.assignments = append(n.assignments, assignment)
	n.games = append(n.games, game)
}

// recordingPusher captures PushToUser calls.
type recordingPusher struct {
	userIDs []int
	types   []string
}

func (p *recordingPusher) PushToUser(userID int, messageType string, payload interface{}) {
	p.userIDs = append(p.userIDs, userID)
	p.types = append(p.types, messageType)
}
