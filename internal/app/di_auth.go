package app

import (
	"fmt"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authRepository "github.com/allisson/authcore/internal/auth/repository"
	authService "github.com/allisson/authcore/internal/auth/service"
	authUseCase "github.com/allisson/authcore/internal/auth/usecase"
	"github.com/allisson/authcore/internal/config"
	"github.com/allisson/authcore/internal/database"
)

// KeyService returns the key service used for session keys and reset tokens.
func (c *Container) KeyService() authService.KeyService {
	c.keyServiceInit.Do(func() {
		c.keyService = authService.NewKeyService()
	})
	return c.keyService
}

// PasswordHasher returns the hasher for user passwords.
func (c *Container) PasswordHasher() authService.SecretHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = authService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// AuthAttemptRepository returns the attempt log selected by AUTH_ATTEMPT_STORE.
func (c *Container) AuthAttemptRepository() (authUseCase.AuthAttemptRepository, error) {
	var err error
	c.authAttemptRepositoryInit.Do(func() {
		c.authAttemptRepository, err = c.initAuthAttemptRepository()
		if err != nil {
			c.initErrors["authAttemptRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authAttemptRepository"]; exists {
		return nil, storedErr
	}
	return c.authAttemptRepository, nil
}

// SessionRepository returns the session repository based on database driver.
func (c *Container) SessionRepository() (authUseCase.SessionRepository, error) {
	var err error
	c.sessionRepositoryInit.Do(func() {
		c.sessionRepository, err = c.initSessionRepository()
		if err != nil {
			c.initErrors["sessionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionRepository"]; exists {
		return nil, storedErr
	}
	return c.sessionRepository, nil
}

// UserRepository returns the user credentials repository based on database driver.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// AbuseGuardUseCase returns the abuse guard use case.
func (c *Container) AbuseGuardUseCase() (authUseCase.AbuseGuardUseCase, error) {
	var err error
	c.abuseGuardUseCaseInit.Do(func() {
		c.abuseGuardUseCase, err = c.initAbuseGuardUseCase()
		if err != nil {
			c.initErrors["abuseGuardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["abuseGuardUseCase"]; exists {
		return nil, storedErr
	}
	return c.abuseGuardUseCase, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// ResetTokenUseCase returns the password-reset token use case.
func (c *Container) ResetTokenUseCase() (authUseCase.ResetTokenUseCase, error) {
	var err error
	c.resetTokenUseCaseInit.Do(func() {
		c.resetTokenUseCase, err = c.initResetTokenUseCase()
		if err != nil {
			c.initErrors["resetTokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resetTokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.resetTokenUseCase, nil
}

// LoginUseCase returns the login use case.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	var err error
	c.loginUseCaseInit.Do(func() {
		c.loginUseCase, err = c.initLoginUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginUseCase"]; exists {
		return nil, storedErr
	}
	return c.loginUseCase, nil
}

// initAuthAttemptRepository creates the attempt log on Redis or on the SQL database.
func (c *Container) initAuthAttemptRepository() (authUseCase.AuthAttemptRepository, error) {
	switch c.config.AuthAttemptStore {
	case config.AttemptStoreRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for auth attempt repository: %w", err)
		}
		return authRepository.NewRedisAuthAttemptRepository(
			client,
			authRepository.DefaultRedisKeyPrefix,
			c.config.AuthAttemptsRetention,
		), nil
	case config.AttemptStoreDatabase:
	default:
		return nil, fmt.Errorf("unsupported auth attempt store: %s", c.config.AuthAttemptStore)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for auth attempt repository: %w", err)
	}

	dialect, err := database.Dialect(c.config.DBDriver)
	if err != nil {
		return nil, err
	}
	if dialect == database.DialectMySQL {
		return authRepository.NewMySQLAuthAttemptRepository(db), nil
	}
	return authRepository.NewPostgreSQLAuthAttemptRepository(db), nil
}

// initSessionRepository creates the session repository based on the database driver.
func (c *Container) initSessionRepository() (authUseCase.SessionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session repository: %w", err)
	}

	dialect, err := database.Dialect(c.config.DBDriver)
	if err != nil {
		return nil, err
	}
	if dialect == database.DialectMySQL {
		return authRepository.NewMySQLSessionRepository(db), nil
	}
	return authRepository.NewPostgreSQLSessionRepository(db), nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	dialect, err := database.Dialect(c.config.DBDriver)
	if err != nil {
		return nil, err
	}
	if dialect == database.DialectMySQL {
		return authRepository.NewMySQLUserRepository(db), nil
	}
	return authRepository.NewPostgreSQLUserRepository(db), nil
}

// initAbuseGuardUseCase creates the abuse guard with the configured thresholds and window.
func (c *Container) initAbuseGuardUseCase() (authUseCase.AbuseGuardUseCase, error) {
	thresholds := authDomain.Thresholds{
		ForIP:        c.config.AuthAttemptsForIP,
		ForIPAndUser: c.config.AuthAttemptsForIPAndUser,
	}
	if err := authUseCase.ValidateThresholds(thresholds); err != nil {
		return nil, fmt.Errorf("invalid auth attempt thresholds: %w", err)
	}

	attemptRepository, err := c.AuthAttemptRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth attempt repository for abuse guard use case: %w", err)
	}

	baseUseCase := authUseCase.NewAbuseGuardUseCase(
		attemptRepository,
		thresholds,
		c.config.AuthAttemptsWindow,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for abuse guard use case: %w", err)
		}
		return authUseCase.NewAbuseGuardUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	sessionRepository, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(sessionRepository, c.KeyService())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initResetTokenUseCase creates the reset token use case with all its dependencies.
func (c *Container) initResetTokenUseCase() (authUseCase.ResetTokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for reset token use case: %w", err)
	}

	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for reset token use case: %w", err)
	}

	baseUseCase := authUseCase.NewResetTokenUseCase(
		txManager,
		userRepository,
		c.KeyService(),
		c.PasswordHasher(),
		c.config.ResetPasswordTokenExpiration,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for reset token use case: %w", err)
		}
		return authUseCase.NewResetTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLoginUseCase creates the login use case on top of the abuse guard and sessions.
func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	abuseGuard, err := c.AbuseGuardUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get abuse guard use case for login use case: %w", err)
	}

	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for login use case: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for login use case: %w", err)
	}

	baseUseCase := authUseCase.NewLoginUseCase(
		abuseGuard,
		userRepository,
		sessionUseCase,
		c.PasswordHasher(),
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for login use case: %w", err)
		}
		return authUseCase.NewLoginUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
