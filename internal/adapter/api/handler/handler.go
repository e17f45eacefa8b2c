package handler

import (
	"shopgram/internal/usecase"
)

var (
	productHandler *ProductHandler
	healthHandler  *HealthHandler
)

func Setup(
	productUseCase *usecase.ProductUseCase,
	socialUseCase *usecase.SocialUseCase,
) {
	productHandler = NewProductHandler(productUseCase, socialUseCase)
	healthHandler = NewHealthHandler()
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
