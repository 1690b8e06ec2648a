package user

import (
	c "blogify/internal/core/domain/common"
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
)

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

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

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
	for _, existing := range r.Users {
		if existing.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Username:     input.Username,
		Email:        input.Email,
		ImageFile:    DEFAULT_IMAGE_FILE,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
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
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username Username) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, other := range r.Users {
		if other.ID == input.ID {
			continue
		}
		if input.DoUsernameUpdate && other.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if input.DoEmailUpdate && other.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if input.DoUsernameUpdate {
			r.Users[ix].Username = input.Username
		}
		if input.DoEmailUpdate {
			r.Users[ix].Email = input.Email
		}
		if input.DoImageFileUpdate {
			r.Users[ix].ImageFile = input.ImageFile
		}
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	Sessions       map[SessionToken]CreateSessionInput
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		Sessions:       make(map[SessionToken]CreateSessionInput),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Sessions[input.Token] = input
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	session, ok := r.Sessions[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, session.UserID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	session, ok := r.Sessions[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.Sessions, token)
	return session.UserID, nil
}

func (r *FakeSessionRepository) DeleteAllForUser(ctx context.Context, userID ID) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete sessions of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var deleted int64
	for token, session := range r.Sessions {
		if session.UserID == userID {
			delete(r.Sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

type FakePasswordResetter struct {
	Token  PasswordResetToken
	UserID ID
	Err    error
}

func NewFakePasswordResetter(token string, userID ID, err error) *FakePasswordResetter {
	return &FakePasswordResetter{
		Token:  PasswordResetToken(token),
		UserID: userID,
		Err:    err,
	}
}

func (r *FakePasswordResetter) GenerateToken(userID ID) (PasswordResetToken, error) {
	return r.Token, nil
}

func (r *FakePasswordResetter) ValidateToken(token PasswordResetToken) (ID, error) {
	if r.Err != nil {
		return ID(0), r.Err
	}
	if token != r.Token {
		return ID(0), ErrInvalidResetTokenSignature
	}
	return r.UserID, nil
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

type FakePictureProcessor struct {
	Name ImageFile
	Err  error
}

func NewFakePictureProcessor(name string) *FakePictureProcessor {
	return &FakePictureProcessor{Name: ImageFile(name)}
}

func (p *FakePictureProcessor) Process(picture Picture) (ImageFile, []byte, error) {
	if p.Err != nil {
		return "", nil, p.Err
	}
	content, err := io.ReadAll(picture.Content)
	if err != nil {
		return "", nil, err
	}
	return p.Name, content, nil
}

type FakePictureStorage struct {
	Files       map[ImageFile][]byte
	Deleted     []ImageFile
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePictureStorage() *FakePictureStorage {
	return &FakePictureStorage{Files: make(map[ImageFile][]byte)}
}

func (s *FakePictureStorage) Save(ctx context.Context, name ImageFile, content []byte) error {
	if s.ReturnError {
		return fmt.Errorf("could not save picture %s", name)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Files[name] = bytes.Clone(content)
	return nil
}

func (s *FakePictureStorage) Delete(ctx context.Context, name ImageFile) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.Files, name)
	s.Deleted = append(s.Deleted, name)
	return nil
}

func (s *FakePictureStorage) URL(name ImageFile) string {
	return "/static/profile_pics/" + string(name)
}
