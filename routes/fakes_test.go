package routes

import (
	"context"
	"sort"
	"time"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

// In-memory repository implementations backing the end-to-end router tests.
// They enforce the same uniqueness rules as the Postgres repositories so the
// duplicate and conflict paths behave identically.

type memUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
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

func (r *memUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	count := 0
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type memGameRepo struct {
	games  map[int]*models.Game
	nextID int

	assignments *memAssignmentRepo
	users       *memUserRepo
}

func newMemGameRepo(assignments *memAssignmentRepo, users *memUserRepo) *memGameRepo {
	return &memGameRepo{
		games:       make(map[int]*models.Game),
		nextID:      1,
		assignments: assignments,
		users:       users,
	}
}

func (r *memGameRepo) Create(ctx context.Context, game *models.Game) error {
	game.ID = r.nextID
	r.nextID++
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *memGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	clone := *game
	return &clone, nil
}

func (r *memGameRepo) GetByIDWithAssignments(ctx context.Context, id int) (*models.Game, error) {
	game, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	gameAssignments := make([]models.GameAssignment, 0)
	ids := make([]int, 0)
	for assignmentID, assignment := range r.assignments.assignments {
		if assignment.GameID == id {
			ids = append(ids, assignmentID)
		}
	}
	sort.Ints(ids)
	for _, assignmentID := range ids {
		assignment := r.assignments.assignments[assignmentID]
		ga := models.GameAssignment{
			ID:     assignment.ID,
			Role:   assignment.Role,
			Status: assignment.Status,
			Fee:    assignment.Fee,
		}
		if user, ok := r.users.users[assignment.UserID]; ok {
			ga.User = user.PublicInfo()
		}
		gameAssignments = append(gameAssignments, ga)
	}
	game.Assignments = gameAssignments
	return game, nil
}

func (r *memGameRepo) List(ctx context.Context) ([]models.Game, error) {
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

func (r *memGameRepo) Update(ctx context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

// Delete cascades to the game's assignments, matching the FK behavior.
func (r *memGameRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.games, id)
	for assignmentID, assignment := range r.assignments.assignments {
		if assignment.GameID == id {
			delete(r.assignments.assignments, assignmentID)
		}
	}
	return nil
}

func (r *memGameRepo) Count(ctx context.Context) (int, error) {
	return len(r.games), nil
}

func (r *memGameRepo) CountUpcoming(ctx context.Context) (int, error) {
	today := time.Now().Format("2006-01-02")
	count := 0
	for _, game := range r.games {
		if game.GameDate >= today {
			count++
		}
	}
	return count, nil
}

type memAssignmentRepo struct {
	assignments map[int]*models.Assignment
	nextID      int

	games *memGameRepo
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: make(map[int]*models.Assignment), nextID: 1}
}

func (r *memAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
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

func (r *memAssignmentRepo) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repositories.ErrAssignmentNotFound
	}
	clone := *assignment
	r.attachGame(&clone)
	return &clone, nil
}

func (r *memAssignmentRepo) GetByGameAndUser(ctx context.Context, gameID, userID int) (*models.Assignment, error) {
	for _, assignment := range r.assignments {
		if assignment.GameID == gameID && assignment.UserID == userID {
			clone := *assignment
			return &clone, nil
		}
	}
	return nil, repositories.ErrAssignmentNotFound
}

func (r *memAssignmentRepo) UpdateStatus(ctx context.Context, id int, status models.AssignmentStatus) error {
	assignment, ok := r.assignments[id]
	if !ok {
		return repositories.ErrAssignmentNotFound
	}
	assignment.Status = status
	assignment.UpdatedAt = time.Now()
	return nil
}

func (r *memAssignmentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.assignments[id]; !ok {
		return repositories.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *memAssignmentRepo) ListByUser(ctx context.Context, userID int) ([]models.Assignment, error) {
	ids := make([]int, 0)
	for id, assignment := range r.assignments {
		if assignment.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	assignments := make([]models.Assignment, 0, len(ids))
	for _, id := range ids {
		clone := *r.assignments[id]
		r.attachGame(&clone)
		assignments = append(assignments, clone)
	}
	return assignments, nil
}

func (r *memAssignmentRepo) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int, error) {
	count := 0
	for _, assignment := range r.assignments {
		if assignment.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memAssignmentRepo) attachGame(assignment *models.Assignment) {
	if r.games == nil {
		return
	}
	if game, ok := r.games.games[assignment.GameID]; ok {
		clone := *game
		assignment.Game = &clone
	}
}

type memAvailabilityRepo struct {
	entries map[int]*models.Availability
	nextID  int

	users *memUserRepo
}

func newMemAvailabilityRepo(users *memUserRepo) *memAvailabilityRepo {
	return &memAvailabilityRepo{entries: make(map[int]*models.Availability), nextID: 1, users: users}
}

func (r *memAvailabilityRepo) Create(ctx context.Context, availability *models.Availability) error {
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

func (r *memAvailabilityRepo) GetByUserAndDate(ctx context.Context, userID int, date string) (*models.Availability, error) {
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Date == date {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, repositories.ErrAvailabilityNotFound
}

func (r *memAvailabilityRepo) UpdateType(ctx context.Context, id int, availabilityType models.AvailabilityType) error {
	entry, ok := r.entries[id]
	if !ok {
		return repositories.ErrAvailabilityNotFound
	}
	entry.Type = availabilityType
	entry.UpdatedAt = time.Now()
	return nil
}

func (r *memAvailabilityRepo) ListByUser(ctx context.Context, userID int) ([]models.Availability, error) {
	entries := make([]models.Availability, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

func (r *memAvailabilityRepo) ListRange(ctx context.Context, startDate, endDate string) ([]models.Availability, error) {
	entries := make([]models.Availability, 0)
	for _, entry := range r.entries {
		if entry.Date < startDate || entry.Date > endDate {
			continue
		}
		clone := *entry
		if user, ok := r.users.users[entry.UserID]; ok {
			publicInfo := user.PublicInfo()
			clone.User = &publicInfo
		}
		entries = append(entries, clone)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

type memNotificationRepo struct {
	notifications map[int]*models.Notification
	nextID        int
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notifications: make(map[int]*models.Notification), nextID: 1}
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *memNotificationRepo) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	clone := *notification
	return &clone, nil
}

func (r *memNotificationRepo) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	ids := make([]int, 0)
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

func (r *memNotificationRepo) MarkRead(ctx context.Context, id int) error {
	notification, ok := r.notifications[id]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	notification.Read = true
	return nil
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, userID int) error {
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

func (r *memNotificationRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.notifications[id]; !ok {
		return repositories.ErrNotificationNotFound
	}
	delete(r.notifications, id)
	return nil
}
