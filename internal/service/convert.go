package service

import (
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/dto"
)

func modelToPersonResponseDto(person *model.Person) *dto.PersonResponseDto {
	return &dto.PersonResponseDto{
		ID:          person.ID.Hex(),
		Email:       person.Email,
		Name:        person.Name,
		PhotoURL:    person.PhotoURL,
		Role:        person.Role,
		HREmail:     person.HREmail,
		CompanyName: person.CompanyName,
		CompanyLogo: person.CompanyLogo,
		DateOfBirth: person.DateOfBirth,
		Package:     person.Package,
		CreatedAt:   person.CreatedAt,
		UpdatedAt:   person.UpdatedAt,
	}
}

func modelToAssetResponseDto(asset *model.Asset) *dto.AssetResponseDto {
	return &dto.AssetResponseDto{
		ID:            asset.ID.Hex(),
		HREmail:       asset.HREmail,
		AssetName:     asset.AssetName,
		AssetType:     asset.AssetType,
		AssetQuantity: asset.AssetQuantity,
		Description:   asset.Description,
		PostDate:      asset.PostDate,
		UpdatedAt:     asset.UpdatedAt,
	}
}

func modelToAssetRequestResponseDto(request *model.AssetRequest) *dto.AssetRequestResponseDto {
	return &dto.AssetRequestResponseDto{
		ID:             request.ID.Hex(),
		AssetID:        request.AssetID.Hex(),
		AssetName:      request.AssetName,
		AssetType:      request.AssetType,
		AssetQuantity:  request.AssetQuantity,
		EmployeeEmail:  request.EmployeeEmail,
		EmployeeName:   request.EmployeeName,
		HREmail:        request.HREmail,
		RequestingDate: request.RequestingDate,
		RequestMessage: request.RequestMessage,
		RequestStatus:  request.RequestStatus,
		ApprovalDate:   request.ApprovalDate,
		ReceivingDate:  request.ReceivingDate,
		RejectionDate:  request.RejectionDate,
		ReturningDate:  request.ReturningDate,
		CancellingDate: request.CancellingDate,
	}
}

func modelToPaymentResponseDto(payment *model.Payment) *dto.PaymentResponseDto {
	return &dto.PaymentResponseDto{
		ID:            payment.ID.Hex(),
		Email:         payment.Email,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PackageID:     payment.PackageID,
		TransactionID: payment.TransactionID,
		Timestamp:     payment.Timestamp,
	}
}

func mapSlice[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
