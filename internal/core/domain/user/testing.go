package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "simpleauth/internal/core/domain/common"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Activate(ctx context.Context, id ID, at time.Time) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not activate user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].ActivatedAt = c.NewOptional(at, true)
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakeActivationCodeRepository struct {
	Codes       map[ID]ActivationCode
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActivationCodeRepository() *FakeActivationCodeRepository {
	return &FakeActivationCodeRepository{Codes: make(map[ID]ActivationCode)}
}

func (r *FakeActivationCodeRepository) Put(
	ctx context.Context,
	code ActivationCode,
) (ac ActivationCode, err error) {
	if r.ReturnError {
		return ac, fmt.Errorf("could not put activation code for user %d", code.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Codes[code.UserID] = code
	return code, nil
}

func (r *FakeActivationCodeRepository) GetActiveForUser(
	ctx context.Context,
	userID ID,
) (ac ActivationCode, err error) {
	if r.ReturnError {
		return ac, fmt.Errorf("could not get activation code for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ac, ok := r.Codes[userID]
	if !ok || ac.IsConsumed() {
		return ac, ErrNoActiveCode
	}
	return ac, nil
}

func (r *FakeActivationCodeRepository) Consume(
	ctx context.Context,
	userID ID,
	at time.Time,
) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not consume activation code for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ac, ok := r.Codes[userID]
	if !ok || ac.IsConsumed() {
		return false, nil
	}
	ac.ConsumedAt = c.NewOptional(at, true)
	r.Codes[userID] = ac
	return true, nil
}

func (r *FakeActivationCodeRepository) Delete(ctx context.Context, userID ID) (bool, error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not delete activation code for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	_, ok := r.Codes[userID]
	delete(r.Codes, userID)
	return ok, nil
}

func (r *FakeActivationCodeRepository) DeleteExpired(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete expired activation codes")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	count := int64(0)
	for userID, ac := range r.Codes {
		if !ac.IsConsumed() && ac.IsExpiredAt(now) {
			delete(r.Codes, userID)
			count++
		}
	}
	return count, nil
}

type FakeActivationCodeGenerator struct {
	Code Code
}

func NewFakeActivationCodeGenerator(code string) *FakeActivationCodeGenerator {
	return &FakeActivationCodeGenerator{Code: Code(code)}
}

func (g *FakeActivationCodeGenerator) GenerateActivationCode() Code {
	return g.Code
}

type FakeActivationCodeSender struct {
	SentTo      []User
	SentCodes   []Code
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActivationCodeSender() *FakeActivationCodeSender {
	return &FakeActivationCodeSender{}
}

func (s *FakeActivationCodeSender) SendActivationCode(ctx context.Context, user User, code Code) error {
	if s.ReturnError {
		return fmt.Errorf("could not send activation code to user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, user)
	s.SentCodes = append(s.SentCodes, code)
	return nil
}

func (s *FakeActivationCodeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.SentTo)
}

func (s *FakeActivationCodeSender) LastSentTo() User {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.SentTo)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.SentTo[l-1]
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}
