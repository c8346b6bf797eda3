// Package catalog contiene los casos de uso de administración del catálogo:
// productos, búsqueda y registros de precio.
package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CatalogUseCase administración de productos y precios.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRecordRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, priceRepo repository.PriceRecordRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, priceRepo: priceRepo}
}

// CreateProduct crea un producto. SKU y nombre son obligatorios.
func (uc *CatalogUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Name:          in.Name,
		Category:      in.Category,
		ShelfLocation: in.ShelfLocation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p, entity.ProductPrices{}), nil
}

// UpdateProduct actualiza los campos descriptivos de un producto.
// La identidad (ID, SKU) es inmutable.
func (uc *CatalogUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil || p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Barcode != "" {
		p.Barcode = in.Barcode
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.ShelfLocation != "" {
		p.ShelfLocation = in.ShelfLocation
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	prices, err := uc.priceRepo.LatestForAllProducts()
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, prices[p.ID]), nil
}

// ListProducts devuelve el catálogo con los precios vigentes. Si query no es
// vacío, filtra por código de barras, SKU o nombre (búsqueda insensible a
// mayúsculas y acentos).
func (uc *CatalogUseCase) ListProducts(query string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	prices, err := uc.priceRepo.LatestForAllProducts()
	if err != nil {
		return nil, err
	}

	q := normalize(query)
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, *toProductResponse(p, prices[p.ID]))
	}
	return out, nil
}

// CreatePriceRecord agrega un registro de precio nuevo para un producto.
// Nunca modifica registros existentes: el historial es inmutable y "vigente"
// se resuelve por fecha efectiva.
func (uc *CatalogUseCase) CreatePriceRecord(productID string, in dto.CreatePriceRecordRequest) (*dto.PriceRecordResponse, error) {
	if in.Wholesale == nil && in.Retail == nil {
		return nil, domain.ErrInvalidInput
	}
	if (in.Wholesale != nil && in.Wholesale.IsNegative()) || (in.Retail != nil && in.Retail.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(productID)
	if err != nil || p == nil {
		return nil, domain.ErrNotFound
	}
	effective := time.Now()
	if in.EffectiveDate != nil {
		effective = *in.EffectiveDate
	}
	r := &entity.PriceRecord{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Wholesale:     in.Wholesale,
		Retail:        in.Retail,
		EffectiveDate: effective,
		CreatedAt:     time.Now(),
	}
	if err := uc.priceRepo.Create(r); err != nil {
		return nil, err
	}
	return &dto.PriceRecordResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Wholesale:     r.Wholesale,
		Retail:        r.Retail,
		EffectiveDate: r.EffectiveDate,
	}, nil
}

// GetPriceHistory devuelve el historial de precios de un producto, más
// reciente primero.
func (uc *CatalogUseCase) GetPriceHistory(productID string) ([]dto.PriceRecordResponse, error) {
	records, err := uc.priceRepo.HistoryByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.PriceRecordResponse{
			ID:            r.ID,
			ProductID:     r.ProductID,
			Wholesale:     r.Wholesale,
			Retail:        r.Retail,
			EffectiveDate: r.EffectiveDate,
		})
	}
	return out, nil
}

func matches(p *entity.Product, q string) bool {
	return strings.Contains(normalize(p.Barcode), q) ||
		strings.Contains(normalize(p.SKU), q) ||
		strings.Contains(normalize(p.Name), q)
}

// normalize pasa a minúsculas y elimina marcas diacríticas (NFD + quitar Mn),
// para que "azúcar" y "AZUCAR" busquen lo mismo.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func toProductResponse(p *entity.Product, prices entity.ProductPrices) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Category:      p.Category,
		ShelfLocation: p.ShelfLocation,
		Cost:          p.Cost,
		Wholesale:     prices.Wholesale,
		Retail:        prices.Retail,
	}
}
