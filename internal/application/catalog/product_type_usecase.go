package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// ProductTypeUseCase CRUD de categorías de producto. Name es único.
type ProductTypeUseCase struct {
	repo repository.ProductTypeRepository
}

// NewProductTypeUseCase construye el caso de uso.
func NewProductTypeUseCase(repo repository.ProductTypeRepository) *ProductTypeUseCase {
	return &ProductTypeUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *ProductTypeUseCase) Create(ctx context.Context, principal auth.Principal, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	t := &entity.ProductType{ID: uuid.New().String(), Name: in.Name}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return &dto.ProductTypeResponse{ID: t.ID, Name: t.Name}, nil
}

// GetByID obtiene una categoría.
func (uc *ProductTypeUseCase) GetByID(ctx context.Context, id string) (*dto.ProductTypeResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ProductTypeResponse{ID: t.ID, Name: t.Name}, nil
}

// Update renombra una categoría.
func (uc *ProductTypeUseCase) Update(ctx context.Context, principal auth.Principal, id string, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Name = in.Name
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return &dto.ProductTypeResponse{ID: t.ID, Name: t.Name}, nil
}

// Delete elimina una categoría.
func (uc *ProductTypeUseCase) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.Can(auth.PermManageCatalog) {
		return domain.ErrForbidden
	}
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista las categorías.
func (uc *ProductTypeUseCase) List(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.ProductTypeResponse{ID: t.ID, Name: t.Name})
	}
	return items, nil
}
