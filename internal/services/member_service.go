package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"staffsync/internal/apperror"
	"staffsync/internal/mailer"
	"staffsync/internal/models"
	"staffsync/internal/repositories"
	"staffsync/internal/verification"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultVerificationCodeTTL is how long a verification code stays valid.
const DefaultVerificationCodeTTL = 10 * time.Minute

const memberLockStripes = 64

// RegisterMemberInput is the body of a registration request.
type RegisterMemberInput struct {
	Email            string `json:"email" validate:"required,email"`
	Name             string `json:"name" validate:"required"`
	Password         string `json:"password" validate:"required"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

// MemberOption configures a MemberService.
type MemberOption func(*MemberService)

// WithClock replaces the time source used for code expiry.
func WithClock(now func() time.Time) MemberOption {
	return func(s *MemberService) {
		s.now = now
	}
}

// WithCodeTTL overrides DefaultVerificationCodeTTL.
func WithCodeTTL(ttl time.Duration) MemberOption {
	return func(s *MemberService) {
		if ttl > 0 {
			s.codeTTL = ttl
		}
	}
}

// MemberService runs the email verification and registration flow.
//
// Operations on the same email are serialised by a striped lock, so the existence
// check and the code write of RequestVerification, and the verify and consume steps of
// Register, cannot interleave within one process. The unique index on members.email
// settles races between processes.
type MemberService struct {
	repo    repositories.MemberRepository
	store   verification.Store
	sender  mailer.Sender
	logger  *zap.Logger
	codeTTL time.Duration
	now     func() time.Time
	locks   [memberLockStripes]sync.Mutex
}

// NewMemberService creates a new MemberService.
func NewMemberService(repo repositories.MemberRepository, store verification.Store, sender mailer.Sender, logger *zap.Logger, opts ...MemberOption) *MemberService {
	s := &MemberService{
		repo:    repo,
		store:   store,
		sender:  sender,
		logger:  logger,
		codeTTL: DefaultVerificationCodeTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemberService) lock(email string) func() {
	h := fnv.New32a()
	h.Write([]byte(email))
	mu := &s.locks[h.Sum32()%memberLockStripes]
	mu.Lock()
	return mu.Unlock
}

// RequestVerification stores a fresh code for email and sends it. A delivery failure is
// logged together with the code and does not fail the request.
func (s *MemberService) RequestVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperror.Validation("email", "email is required")
	}

	code, err := s.issueCode(ctx, email)
	if err != nil {
		return err
	}

	if err := s.sender.SendVerificationCode(ctx, email, code, s.codeTTL); err != nil {
		s.logger.Warn("failed to send verification mail, falling back to log",
			zap.String("email", email),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	return nil
}

func (s *MemberService) issueCode(ctx context.Context, email string) (string, error) {
	unlock := s.lock(email)
	defer unlock()

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperror.Validation("email", "email %s is already registered", email)
	}

	code, err := verification.GenerateCode()
	if err != nil {
		return "", err
	}
	entry := verification.Entry{Code: code, ExpiresAt: s.now().Add(s.codeTTL)}
	if err := s.store.Save(ctx, email, entry); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyCode reports whether code matches the pending code for email. The code stays
// valid after a successful check; an expired entry is evicted.
func (s *MemberService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)
	unlock := s.lock(email)
	defer unlock()
	return s.verifyCode(ctx, email, code)
}

func (s *MemberService) verifyCode(ctx context.Context, email, code string) (bool, error) {
	entry, ok, err := s.store.Get(ctx, email)
	if err != nil || !ok {
		return false, err
	}
	if entry.Expired(s.now()) {
		if err := s.store.Delete(ctx, email); err != nil {
			return false, err
		}
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) == 1, nil
}

// Register creates a verified member once the code checks out. The code is consumed only
// after the member has been saved, so a failed attempt can be retried.
func (s *MemberService) Register(ctx context.Context, in RegisterMemberInput) (*models.Member, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, apperror.Validation("email", "email is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.Validation("name", "name is required")
	}
	if in.Password == "" {
		return nil, apperror.Validation("password", "password is required")
	}

	unlock := s.lock(email)
	defer unlock()

	ok, err := s.verifyCode(ctx, email, in.VerificationCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("verificationCode", "verification code is invalid or expired")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Validation("email", "email %s is already registered", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		Email:    email,
		Password: string(hashed),
		Name:     in.Name,
		Role:     models.DefaultMemberRole,
		Verified: true,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, email); err != nil {
		s.logger.Warn("failed to clear verification code", zap.String("email", email), zap.Error(err))
	}
	s.logger.Info("member registered", zap.String("email", email), zap.String("role", string(member.Role)))
	return member, nil
}

// RemainingTime returns the whole seconds left on the pending code, or 0 when there is
// none or it has expired.
func (s *MemberService) RemainingTime(ctx context.Context, email string) (int64, error) {
	entry, ok, err := s.store.Get(ctx, normalizeEmail(email))
	if err != nil || !ok {
		return 0, err
	}
	remaining := entry.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return 0, nil
	}
	return int64(remaining / time.Second), nil
}

// normalizeEmail is the key every member lookup uses; addresses differing only in case
// belong to one member.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
