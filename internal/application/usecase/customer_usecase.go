package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Document:  in.Document,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID. Devuelve nil sin error si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza un cliente campo a campo.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Document != nil {
		customer.Document = *in.Document
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con búsqueda opcional (nombre, teléfono o documento).
func (uc *CustomerUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un cliente por ID.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Document:  c.Document,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
