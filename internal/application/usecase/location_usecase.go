package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dasso14/ModuloInventario/internal/application/dto"
	"github.com/Dasso14/ModuloInventario/internal/domain"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
	"github.com/Dasso14/ModuloInventario/internal/domain/repository"
)

// maxHierarchyDepth corte de la caminata de ancestros ante datos corruptos.
const maxHierarchyDepth = 100

// LocationUseCase casos de uso CRUD para ubicaciones, incluida la validación
// de la jerarquía: una ubicación nunca puede ser su propio ancestro.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación. El padre, si se indica, debe existir.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Capacity != nil && in.Capacity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != nil {
		parent, err := uc.repo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ParentID:  in.ParentID,
		Capacity:  in.Capacity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Update actualiza una ubicación. Cambiar el padre exige verificar que la
// nueva cadena de ancestros no pase por la propia ubicación (sin ciclos).
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Capacity != nil {
		if in.Capacity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		location.Capacity = in.Capacity
	}
	if in.ParentID != nil {
		if err := uc.checkNoCycle(id, *in.ParentID); err != nil {
			return nil, err
		}
		location.ParentID = in.ParentID
	}
	if in.Active != nil {
		location.Active = *in.Active
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate marca la ubicación como inactiva; el histórico se conserva.
func (uc *LocationUseCase) Deactivate(id string) error {
	return uc.repo.Deactivate(id)
}

// checkNoCycle camina la cadena de ancestros desde newParentID; si alcanza a
// locationID el cambio formaría un ciclo.
func (uc *LocationUseCase) checkNoCycle(locationID, newParentID string) error {
	if locationID == newParentID {
		return domain.ErrHierarchyCycle
	}
	currentID := newParentID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		current, err := uc.repo.GetByID(currentID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.ParentID == nil {
			return nil
		}
		if *current.ParentID == locationID {
			return domain.ErrHierarchyCycle
		}
		currentID = *current.ParentID
	}
	return domain.ErrHierarchyCycle
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		ParentID:  l.ParentID,
		Capacity:  l.Capacity,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
