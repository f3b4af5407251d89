package services

import (
	"errors"
	"fmt"

	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account was suspended")
)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// NewAccount registers an account. Username uniqueness is checked before
// email uniqueness so the caller always learns about the username clash
// first.
func NewAccount(name, email, password string) (models.Account, error) {
	var account models.Account

	var count int64
	if err := database.C.Model(&models.Account{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return account, err
	} else if count > 0 {
		return account, fmt.Errorf("username %s has already been taken", name)
	}
	if err := database.C.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return account, err
	} else if count > 0 {
		return account, fmt.Errorf("email %s has already been registered", email)
	}

	secret, err := HashPassword(password)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Name:     name,
		Email:    email,
		Password: secret,
	}

	if err := database.C.Create(&account).Error; err != nil {
		// The pre-checks above race against concurrent registrations, the
		// unique indexes have the final say.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account, fmt.Errorf("username or email has already been taken")
		}
		return account, err
	}

	log.Info().Uint("id", account.ID).Str("name", account.Name).Msg("New account registered.")
	return account, nil
}

func AuthenticateAccount(email, password string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}

	if account.SuspendedAt != nil {
		return account, ErrAccountSuspended
	}

	if !VerifyPassword(password, account.Password) {
		return account, ErrInvalidCredentials
	}

	return account, nil
}

type AccountChanges struct {
	Name     *string
	Email    *string
	Password *string
	Bio      *string
	Avatar   *string
}

// EditAccount applies the provided fields only. Name and email changes are
// re-checked against the unique registry before saving.
func EditAccount(account models.Account, changes AccountChanges) (models.Account, error) {
	if changes.Name != nil && *changes.Name != account.Name {
		var count int64
		if err := database.C.Model(&models.Account{}).
			Where("name = ? AND id != ?", *changes.Name, account.ID).
			Count(&count).Error; err != nil {
			return account, err
		} else if count > 0 {
			return account, fmt.Errorf("username %s has already been taken", *changes.Name)
		}
		account.Name = *changes.Name
	}
	if changes.Email != nil && *changes.Email != account.Email {
		var count int64
		if err := database.C.Model(&models.Account{}).
			Where("email = ? AND id != ?", *changes.Email, account.ID).
			Count(&count).Error; err != nil {
			return account, err
		} else if count > 0 {
			return account, fmt.Errorf("email %s has already been registered", *changes.Email)
		}
		account.Email = *changes.Email
	}
	if changes.Password != nil {
		secret, err := HashPassword(*changes.Password)
		if err != nil {
			return account, err
		}
		account.Password = secret
	}
	if changes.Bio != nil {
		account.Bio = *changes.Bio
	}
	if changes.Avatar != nil {
		account.Avatar = changes.Avatar
	}

	err := database.C.Save(&account).Error

	return account, err
}

func HashPassword(password string) (string, error) {
	data, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password: %v", err)
	}
	return string(data), nil
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
