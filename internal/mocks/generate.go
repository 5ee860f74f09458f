package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks marketbrain/internal/provider Provider
