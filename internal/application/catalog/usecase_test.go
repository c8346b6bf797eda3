package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) UpdateCost(string, decimal.Decimal) error { return nil }

type fakePriceRepo struct {
	records   []*entity.PriceRecord
	latest    map[string]entity.ProductPrices
	latestErr error
}

func (r *fakePriceRepo) Create(rec *entity.PriceRecord) error {
	r.records = append(r.records, rec)
	return nil
}
func (r *fakePriceRepo) HistoryByProduct(productID string) ([]*entity.PriceRecord, error) {
	var out []*entity.PriceRecord
	for _, rec := range r.records {
		if rec.ProductID == productID {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (r *fakePriceRepo) LatestForAllProducts() (map[string]entity.ProductPrices, error) {
	if r.latestErr != nil {
		return nil, r.latestErr
	}
	return r.latest, nil
}

func newCatalog() (*catalog.CatalogUseCase, *fakeProductRepo, *fakePriceRepo) {
	products := &fakeProductRepo{byID: map[string]*entity.Product{
		"P": {ID: "P", SKU: "AZ-01", Barcode: "779001", Name: "Azúcar Morena", Cost: dec("5")},
		"Q": {ID: "Q", SKU: "CF-01", Barcode: "779002", Name: "Café Molido", Cost: dec("18")},
	}}
	prices := &fakePriceRepo{latest: map[string]entity.ProductPrices{
		"P": {Retail: ptr("20")},
	}}
	return catalog.NewCatalogUseCase(products, prices), products, prices
}

// La búsqueda ignora mayúsculas y acentos: "azucar" encuentra "Azúcar Morena".
func TestListProducts_BusquedaInsensibleAAcentos(t *testing.T) {
	uc, _, _ := newCatalog()

	out, err := uc.ListProducts("azucar")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "P", out[0].ID)
	assert.NotNil(t, out[0].Retail, "el listado trae los precios vigentes")
}

func TestListProducts_BusquedaPorBarcodeYSKU(t *testing.T) {
	uc, _, _ := newCatalog()

	porBarcode, err := uc.ListProducts("779002")
	require.NoError(t, err)
	require.Len(t, porBarcode, 1)
	assert.Equal(t, "Q", porBarcode[0].ID)

	porSKU, err := uc.ListProducts("cf-01")
	require.NoError(t, err)
	require.Len(t, porSKU, 1)
	assert.Equal(t, "Q", porSKU[0].ID)
}

func TestListProducts_SinQueryDevuelveTodo(t *testing.T) {
	uc, _, _ := newCatalog()

	out, err := uc.ListProducts("")

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCreateProduct_RequiereSKUYNombre(t *testing.T) {
	uc, _, _ := newCatalog()

	_, err := uc.CreateProduct(dto.CreateProductRequest{Name: "Sin SKU"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La identidad del producto es inmutable: Update no toca ID ni SKU.
func TestUpdateProduct_IdentidadInmutable(t *testing.T) {
	uc, products, _ := newCatalog()

	out, err := uc.UpdateProduct("P", dto.UpdateProductRequest{Name: "Azúcar Blanca"})

	require.NoError(t, err)
	assert.Equal(t, "Azúcar Blanca", out.Name)
	assert.Equal(t, "AZ-01", products.byID["P"].SKU, "el SKU no cambia")
}

// El error al leer los precios vigentes sube al caller, no se traga.
func TestUpdateProduct_PropagaErrorDePrecios(t *testing.T) {
	uc, _, prices := newCatalog()
	prices.latestErr = errors.New("conexión perdida")

	_, err := uc.UpdateProduct("P", dto.UpdateProductRequest{Name: "Azúcar Blanca"})

	assert.ErrorIs(t, err, prices.latestErr)
}

// Un cambio de precio crea un registro nuevo; el historial nunca se modifica.
func TestCreatePriceRecord_AppendOnly(t *testing.T) {
	uc, _, prices := newCatalog()

	_, err := uc.CreatePriceRecord("P", dto.CreatePriceRecordRequest{Retail: ptr("22")})
	require.NoError(t, err)
	_, err = uc.CreatePriceRecord("P", dto.CreatePriceRecordRequest{Retail: ptr("25")})
	require.NoError(t, err)

	assert.Len(t, prices.records, 2, "cada cambio inserta, nunca actualiza")
}

func TestCreatePriceRecord_RequiereAlMenosUnPrecio(t *testing.T) {
	uc, _, _ := newCatalog()

	_, err := uc.CreatePriceRecord("P", dto.CreatePriceRecordRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negativo := dec("-1")
	_, err = uc.CreatePriceRecord("P", dto.CreatePriceRecordRequest{Retail: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precios negativos se rechazan")
}
