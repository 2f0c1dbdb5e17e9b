package venue

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Venue Domain 錯誤定義
// ===========================

// Venue Domain 錯誤代碼常量
const (
	ErrCodeInvalidVenueID   shared.ErrorCode = "VENUE_ID_INVALID"
	ErrCodeInvalidVenueName shared.ErrorCode = "VENUE_NAME_INVALID"
	ErrCodeVenueNotFound    shared.ErrorCode = "VENUE_NOT_FOUND"
	ErrCodeEmptyCatalog     shared.ErrorCode = "VENUE_CATALOG_EMPTY"
	ErrCodeDuplicateVenue   shared.ErrorCode = "VENUE_DUPLICATE"

	ErrCodeInvalidProduct   shared.ErrorCode = "PRODUCT_INVALID"
	ErrCodeProductNotFound  shared.ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeEmptyProductList shared.ErrorCode = "PRODUCT_CATALOG_EMPTY"
)

var (
	ErrInvalidVenueID = &shared.DomainError{
		Code:    ErrCodeInvalidVenueID,
		Message: "некорректный идентификатор кофейни",
	}

	ErrInvalidVenueName = &shared.DomainError{
		Code:    ErrCodeInvalidVenueName,
		Message: "кофейня должна иметь название",
	}

	ErrVenueNotFound = &shared.DomainError{
		Code:    ErrCodeVenueNotFound,
		Message: "кофейня не найдена",
	}

	ErrEmptyCatalog = &shared.DomainError{
		Code:    ErrCodeEmptyCatalog,
		Message: "список кофеен пуст",
	}

	ErrDuplicateVenue = &shared.DomainError{
		Code:    ErrCodeDuplicateVenue,
		Message: "идентификатор кофейни уже занят",
	}
)

var (
	ErrInvalidProduct = &shared.DomainError{
		Code:    ErrCodeInvalidProduct,
		Message: "некорректное описание товара",
	}

	ErrProductNotFound = &shared.DomainError{
		Code:    ErrCodeProductNotFound,
		Message: "товар не найден",
	}

	ErrEmptyProductList = &shared.DomainError{
		Code:    ErrCodeEmptyProductList,
		Message: "список товаров пуст",
	}
)
