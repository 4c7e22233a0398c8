package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/internal/domains/resource/model"
	gDto "roost/shared/dto"
	gRepo "roost/shared/repository"
)

type Resource interface {
	Insert(ctx context.Context, model model.Resource) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Resource, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Resource, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Slot interface {
	Insert(ctx context.Context, model model.ExperienceSlot) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ExperienceSlot, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Resource]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Resource {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Resource](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type slotRepositoryImpl struct {
	gRepo.Repository[model.ExperienceSlot]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSlot(db *postgres.Connection, otel otel.Otel) Slot {
	return &slotRepositoryImpl{
		Repository: gRepo.NewRepository[model.ExperienceSlot](model.SlotEntityName, model.SlotTableName, model.SlotFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
