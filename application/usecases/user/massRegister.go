package user_usecases

import (
	"context"
	"fmt"

	"atmsecurity.io/application/constants"
	"atmsecurity.io/application/controller/dto"
	"atmsecurity.io/application/repository"
	"atmsecurity.io/application/utils"
	"atmsecurity.io/infrastructure/cryptography"
	"atmsecurity.io/infrastructure/database/repository/mongo"
	"atmsecurity.io/infrastructure/logger"
)

// MassRegisterUseCase creates every row it can. Each created user gets a
// random password that is emailed to them; rows that fail are reported by
// index and do not stop the rest.
func MassRegisterUseCase(ctx context.Context, payload *dto.MassRegisterDTO) dto.MassRegisterResult {
	result := dto.MassRegisterResult{CreatedUsers: []string{}, Errors: []dto.MassRegisterError{}}
	userRepo := repository.UserRepo()
	seen := map[string]bool{}

	for i, row := range payload.Users {
		user := newUser(row.Email, row.Username, row.FirstName, row.LastName, row.Role, row.EmployeeID)
		fail := func(reason string) {
			result.Errors = append(result.Errors, dto.MassRegisterError{Index: i, Email: user.Email, Error: reason})
		}
		if seen[user.Email] {
			fail("email appears more than once in this request")
			continue
		}
		seen[user.Email] = true

		password, err := utils.GenerateRandomPassword(constants.MASS_REGISTER_PASSWORD_LENGTH)
		if err != nil {
			fail("could not generate a password")
			continue
		}
		hashedPassword, err := cryptography.CryptoHahser.HashString(password, nil)
		if err != nil {
			fail("could not hash the password")
			continue
		}
		user.Password = string(hashedPassword)

		created, err := userRepo.CreateOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				fail("a user with this email or employee id already exists")
			} else {
				fail(fmt.Sprintf("could not save user: %s", err.Error()))
			}
			continue
		}
		result.CreatedUsers = append(result.CreatedUsers, created.ID)
		sendCredentialsEmail(created, password)
	}

	logger.Info("mass registration completed", logger.LoggerOptions{
		Key:  "created",
		Data: len(result.CreatedUsers),
	}, logger.LoggerOptions{
		Key:  "failed",
		Data: len(result.Errors),
	})
	return result
}
