package router

import (
	userapp "github.com/QuentinDoniczka/SeriousGameBack/internal/application"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/container"
	repouser "github.com/QuentinDoniczka/SeriousGameBack/internal/domain/repository"
	pginfra "github.com/QuentinDoniczka/SeriousGameBack/internal/infrastructure/postgres"
	handlers "github.com/QuentinDoniczka/SeriousGameBack/internal/interface/http"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
	)

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
