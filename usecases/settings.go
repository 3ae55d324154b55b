package usecases

import (
	"context"

	"habit-tracker/entities"
	"habit-tracker/repositories"
)

type SettingsInput struct {
	Theme        *string `json:"theme" validate:"omitempty,min=1,max=32"`
	ColorPalette *string `json:"color_palette" validate:"omitempty,min=1,max=32"`
}

type SettingsUseCase struct {
	settings repositories.SettingsRepository
}

func NewSettingsUseCase(settings repositories.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get returns the user's settings, creating the defaults on first access.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*entities.UserSettings, error) {
	return uc.settings.GetOrCreate(ctx, userID)
}

// Update applies the provided fields; omitted fields keep their value.
func (uc *SettingsUseCase) Update(ctx context.Context, userID string, in SettingsInput) (*entities.UserSettings, error) {
	fields := map[string]interface{}{}
	if in.Theme != nil {
		fields["theme"] = *in.Theme
	}
	if in.ColorPalette != nil {
		fields["color_palette"] = *in.ColorPalette
	}
	if len(fields) == 0 {
		return nil, validationError("No fields to update")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := uc.settings.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	settings, err := uc.settings.Update(ctx, userID, fields)
	if err != nil {
		return nil, mapNotFound(err, "Settings not found")
	}
	return settings, nil
}
