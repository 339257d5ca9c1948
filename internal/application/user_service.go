package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	repo "github.com/oksasatya/task-manager-pro/internal/domain/repository"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
	"github.com/oksasatya/task-manager-pro/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// EmailPublisher queues email jobs for the background worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserService struct {
	Users         repo.UserRepository
	Tasks         repo.TaskRepository
	Notifications repo.NotificationRepository
	Settings      repo.SettingsRepository
	Notifier      *Notifier
	JWT           *helpers.JWTManager
	GCS           *storage.Client
	GCSBucket     string
	Redis         *redis.Client
	Mail          EmailPublisher
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESUsersIndex  string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates the account, greets the user with a welcome
// notification, and queues the welcome email. Email addresses are
// stored lowercase.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != repo.ErrNotFound {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.UserRegistered(ctx, u.ID.Hex())
	}
	if s.Mail != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"name": u.Name},
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to queue welcome email")
		}
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	uid := u.ID.Hex()
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(uid)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    uid,
			"email":      u.Email,
			"name":       u.Name,
			"avatar_url": u.AvatarURL,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login authenticates and issues a session. Due-task reminders for the
// fresh session are the handler's concern.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token's
// sid must match the live Redis session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	uid := u.ID.Hex()
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(uid)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(uid, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := sessionKey(uid)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": nowRFC3339()})
		pipe.Expire(ctx, key, 24*time.Hour)
		_, _ = pipe.Exec(ctx)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, uid, nil
}

// Logout drops the Redis session, invalidating every outstanding token
// for the user.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("failed to drop session")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name      string
	Bio       string
	AvatarURL string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = strings.TrimSpace(in.Name)
	}
	if in.Bio != "" {
		u.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(userID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       u.Name,
			"avatar_url": u.AvatarURL,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	_ = s.indexUser(ctx, u)
	return u, nil
}

// UploadAvatar stores the image in GCS and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", ErrUserNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	if s.Redis != nil {
		s.Redis.HSet(ctx, sessionKey(userID), map[string]any{
			"avatar_url": u.AvatarURL,
			"updated_at": nowRFC3339(),
		})
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

// ListUsers returns all registered users, for the assignment picker.
func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List(ctx)
}

// ExportBundle is the JSON document handed to the user on data export
// and accepted back on import.
type ExportBundle struct {
	ExportedAt    time.Time              `json:"exported_at"`
	User          *entity.User           `json:"user"`
	Tasks         []*entity.Task         `json:"tasks"`
	Notifications []*entity.Notification `json:"notifications"`
	Settings      *entity.UserSettings   `json:"settings,omitempty"`
}

// ExportData collects everything the user owns into one bundle.
func (s *UserService) ExportData(ctx context.Context, userID string) (*ExportBundle, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	tasks, err := s.Tasks.ListByOwner(ctx, userID, repo.TaskFilter{})
	if err != nil {
		return nil, err
	}
	ns, err := s.Notifications.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.GetByUser(ctx, userID)
	if err != nil && err != repo.ErrNotFound {
		return nil, err
	}
	return &ExportBundle{
		ExportedAt:    time.Now().UTC(),
		User:          u,
		Tasks:         tasks,
		Notifications: ns,
		Settings:      settings,
	}, nil
}

// ImportData restores a previously exported bundle: the user's current
// tasks are replaced by the bundle's tasks, re-owned and given fresh
// ids. Returns the number of tasks imported.
func (s *UserService) ImportData(ctx context.Context, userID string, bundle *ExportBundle) (int, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, ErrUserNotFound
	}
	if err := s.Tasks.DeleteAllForOwner(ctx, userID); err != nil {
		return 0, err
	}
	if len(bundle.Tasks) == 0 {
		return 0, nil
	}
	now := time.Now()
	for _, t := range bundle.Tasks {
		t.ID = primitive.NilObjectID
		t.Owner = oid
		if t.Status == "" {
			t.Status = entity.StatusPending
		}
		if t.Priority == "" {
			t.Priority = entity.PriorityMedium
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}
	if err := s.Tasks.InsertMany(ctx, bundle.Tasks); err != nil {
		return 0, err
	}
	return len(bundle.Tasks), nil
}

// DeleteAccount removes the user and everything they own, then drops
// the session and the search index entry.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Tasks.DeleteAllForOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.Notifications.DeleteAllForRecipient(ctx, userID); err != nil {
		return err
	}
	if err := s.Settings.DeleteForUser(ctx, userID); err != nil && err != repo.ErrNotFound {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	s.Logout(ctx, userID)
	s.deindexUser(ctx, userID)
	return nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID.Hex(),
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID.Hex()).Warn("es index response error")
	}
	return nil
}

func (s *UserService) deindexUser(ctx context.Context, userID string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
