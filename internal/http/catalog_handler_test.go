package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

func TestListProducts_Success(t *testing.T) {
	handler := NewCatalogHandler(newCatalogStub(), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.ListProducts(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var products []domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&products); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(products))
	}
}
