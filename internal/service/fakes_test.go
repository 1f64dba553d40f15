package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository with the same claim and
// delete semantics as the Postgres implementation, guarded by one mutex so
// concurrent claims contend the way rows do.
type fakeTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int64]domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ticket.ID = f.nextID
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	return f.filter(func(domain.Ticket) bool { return true }), nil
}

func (f *fakeTicketRepo) ListUnassigned(ctx context.Context) ([]domain.Ticket, error) {
	return f.filter(func(t domain.Ticket) bool { return t.AssignedUserID == nil }), nil
}

func (f *fakeTicketRepo) ListUnassignedForOperatorType(ctx context.Context, opType domain.OperatorType) ([]domain.Ticket, error) {
	return f.filter(func(t domain.Ticket) bool {
		if t.AssignedUserID != nil {
			return false
		}
		return t.RecommendedRole == nil || *t.RecommendedRole == opType
	}), nil
}

func (f *fakeTicketRepo) ListByAssignee(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return f.filter(func(t domain.Ticket) bool {
		return t.AssignedUserID != nil && *t.AssignedUserID == userID
	}), nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) Claim(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if ticket.AssignedUserID != nil {
		return nil, repository.ErrTicketAssigned
	}
	assignee := userID
	ticket.AssignedUserID = &assignee
	f.tickets[ticketID] = ticket
	return &ticket, nil
}

func (f *fakeTicketRepo) DeleteByAssignee(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok || ticket.AssignedUserID == nil || *ticket.AssignedUserID != userID {
		return nil, pgx.ErrNoRows
	}
	delete(f.tickets, ticketID)
	return &ticket, nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return &ticket, nil
}

func (f *fakeTicketRepo) filter(keep func(domain.Ticket) bool) []domain.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if keep(ticket) {
			result = append(result, ticket)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// fakeUserRepo is an in-memory UserRepository. Association bookkeeping is
// delegated to the animal and enclosure fakes when present.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (f *fakeUserRepo) add(user domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error {
	*user = f.add(*user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.User
	for _, user := range f.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.users, id)
	return &user, nil
}

// fakeAnimalRepo is an in-memory AnimalRepository.
type fakeAnimalRepo struct {
	mu      sync.Mutex
	nextID  int64
	animals map[int64]domain.Animal
	fail    error
}

func newFakeAnimalRepo() *fakeAnimalRepo {
	return &fakeAnimalRepo{animals: map[int64]domain.Animal{}}
}

func (f *fakeAnimalRepo) Create(ctx context.Context, animal *domain.Animal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.nextID++
	animal.ID = f.nextID
	f.animals[animal.ID] = *animal
	return nil
}

func (f *fakeAnimalRepo) GetByID(ctx context.Context, id int64) (*domain.Animal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	animal, ok := f.animals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &animal, nil
}

func (f *fakeAnimalRepo) List(ctx context.Context) ([]domain.Animal, error) {
	return f.filter(func(domain.Animal) bool { return true }), nil
}

func (f *fakeAnimalRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Animal, error) {
	return f.filter(func(a domain.Animal) bool {
		return a.UserID != nil && *a.UserID == userID
	}), nil
}

func (f *fakeAnimalRepo) ListByEnclosure(ctx context.Context, enclosureID int64) ([]domain.Animal, error) {
	return f.filter(func(a domain.Animal) bool {
		return a.EnclosureID != nil && *a.EnclosureID == enclosureID
	}), nil
}

func (f *fakeAnimalRepo) Update(ctx context.Context, animal *domain.Animal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.animals[animal.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.animals[animal.ID] = *animal
	return nil
}

func (f *fakeAnimalRepo) Delete(ctx context.Context, id int64) (*domain.Animal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	animal, ok := f.animals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.animals, id)
	return &animal, nil
}

func (f *fakeAnimalRepo) filter(keep func(domain.Animal) bool) []domain.Animal {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Animal
	for _, animal := range f.animals {
		if keep(animal) {
			result = append(result, animal)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// fakeEnclosureRepo is an in-memory EnclosureRepository.
type fakeEnclosureRepo struct {
	mu         sync.Mutex
	nextID     int64
	enclosures map[int64]domain.Enclosure
}

func newFakeEnclosureRepo() *fakeEnclosureRepo {
	return &fakeEnclosureRepo{enclosures: map[int64]domain.Enclosure{}}
}

func (f *fakeEnclosureRepo) Create(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	enclosure.ID = f.nextID
	f.enclosures[enclosure.ID] = *enclosure
	return nil
}

func (f *fakeEnclosureRepo) GetByID(ctx context.Context, id int64) (*domain.Enclosure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	enclosure, ok := f.enclosures[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &enclosure, nil
}

func (f *fakeEnclosureRepo) List(ctx context.Context) ([]domain.Enclosure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Enclosure
	for _, enclosure := range f.enclosures {
		result = append(result, enclosure)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeEnclosureRepo) Update(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.enclosures[enclosure.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.enclosures[enclosure.ID] = *enclosure
	return nil
}

func (f *fakeEnclosureRepo) Delete(ctx context.Context, id int64) (*domain.Enclosure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	enclosure, ok := f.enclosures[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.enclosures, id)
	return &enclosure, nil
}
