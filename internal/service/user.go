package service

import (
	"fmt"

	"project-manager/internal/models"
	"project-manager/internal/store"
	"project-manager/internal/util"
)

// UserService is the user directory: accounts, sessions and preferences,
// all backed by one JSON array of user records.
type UserService struct {
	store  *store.Store
	fileID string
}

func NewUserService(s *store.Store, fileID string) *UserService {
	return &UserService{store: s, fileID: fileID}
}

// Signup creates an account and opens a session for it. The returned
// token is the cookie value; the view is safe to hand to clients.
// Username uniqueness is case-sensitive exact match, checked here only.
func (s *UserService) Signup(username, password string) (models.PublicUser, string, error) {
	if err := util.NonEmpty("username", username); err != nil {
		return models.PublicUser{}, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := util.NonEmpty("password", password); err != nil {
		return models.PublicUser{}, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	salt, hash, err := util.HashPassword(password)
	if err != nil {
		return models.PublicUser{}, "", fmt.Errorf("hash password: %w", err)
	}
	token, err := util.NewSessionToken()
	if err != nil {
		return models.PublicUser{}, "", fmt.Errorf("issue token: %w", err)
	}

	var created models.User
	err = store.UpdateLenient(s.store, s.fileID, func(users []models.User) ([]models.User, error) {
		nextID := 1
		for _, u := range users {
			if u.Username == username {
				return nil, ErrUsernameTaken
			}
			if u.ID >= nextID {
				nextID = u.ID + 1
			}
		}
		created = models.User{
			ID:           nextID,
			Username:     username,
			Salt:         salt,
			PasswordHash: hash,
			SessionToken: token,
		}
		return append(users, created), nil
	})
	if err != nil {
		return models.PublicUser{}, "", err
	}
	return created.Public(), token, nil
}

// Login verifies credentials and rotates the session token, invalidating
// any previous session. Unknown usernames and wrong passwords are
// deliberately indistinguishable.
func (s *UserService) Login(username, password string) (models.PublicUser, string, error) {
	token, err := util.NewSessionToken()
	if err != nil {
		return models.PublicUser{}, "", fmt.Errorf("issue token: %w", err)
	}

	var user models.User
	err = store.UpdateLenient(s.store, s.fileID, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Username != username {
				continue
			}
			if !util.CheckPassword(password, users[i].Salt, users[i].PasswordHash) {
				return nil, ErrInvalidCredentials
			}
			users[i].SessionToken = token
			user = users[i]
			return users, nil
		}
		return nil, ErrInvalidCredentials
	})
	if err != nil {
		return models.PublicUser{}, "", err
	}
	return user.Public(), token, nil
}

// Logout revokes the session behind token. An unknown or empty token is a
// no-op, not an error.
func (s *UserService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return store.UpdateLenient(s.store, s.fileID, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].SessionToken != "" && users[i].SessionToken == token {
				users[i].SessionToken = ""
				break
			}
		}
		return users, nil
	})
}

// CurrentUser resolves a session token to its user. A revoked or unknown
// token never resolves again.
func (s *UserService) CurrentUser(token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrNotAuthenticated
	}
	for _, u := range store.Load[models.User](s.store, s.fileID) {
		if u.SessionToken != "" && u.SessionToken == token {
			return u, nil
		}
	}
	return models.User{}, ErrNotAuthenticated
}

// UpdatePreferences shallow-merges partial into the stored preferences:
// new keys added, existing keys overwritten, untouched keys preserved.
// Returns the merged map.
func (s *UserService) UpdatePreferences(userID int, partial map[string]any) (map[string]any, error) {
	var merged map[string]any
	err := store.Update(s.store, s.fileID, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			if users[i].Preferences == nil {
				users[i].Preferences = make(map[string]any, len(partial))
			}
			for k, v := range partial {
				users[i].Preferences[k] = v
			}
			merged = users[i].Preferences
			return users, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, tagStoreErr(err)
	}
	return merged, nil
}

// ChangePassword re-verifies the current password before replacing the
// credential material. The session token is left untouched.
func (s *UserService) ChangePassword(userID int, currentPassword, newPassword string) error {
	if err := util.NonEmpty("new password", newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	salt, hash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = store.Update(s.store, s.fileID, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			if !util.CheckPassword(currentPassword, users[i].Salt, users[i].PasswordHash) {
				return nil, ErrInvalidCredentials
			}
			users[i].Salt = salt
			users[i].PasswordHash = hash
			return users, nil
		}
		return nil, ErrNotFound
	})
	return tagStoreErr(err)
}
