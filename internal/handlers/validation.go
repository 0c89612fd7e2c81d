package handlers

import (
	"net/mail"
	"strings"
	"time"
)

var allowedRoles = map[string]struct{}{
	"admin": {},
	"user":  {},
}

func validateRole(role string) string {
	if _, ok := allowedRoles[strings.TrimSpace(role)]; !ok {
		return "role must be one of: admin, user"
	}
	return ""
}

func validateEmail(email string) string {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return "email must be a valid address"
	}
	return ""
}

func validateClientRequest(req clientRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if err := validateEmail(req.Email); err != "" {
		return err
	}
	return ""
}

func validateWorkoutRequest(req workoutRequest) string {
	if strings.TrimSpace(req.Date) == "" {
		return "date is required"
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date)); err != nil {
		return "date must be in YYYY-MM-DD format"
	}
	if strings.TrimSpace(req.ExerciseName) == "" {
		return "exercise_name is required"
	}
	if strings.TrimSpace(req.SetsRepsWeight) == "" {
		return "sets_reps_weight is required"
	}
	return ""
}

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if err := validateEmail(req.Email); err != "" {
		return err
	}
	if err := validateRole(req.Role); err != "" {
		return err
	}
	return ""
}

func validateTrainingRequestRequest(req trainingRequestRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.Age <= 0 {
		return "age must be greater than 0"
	}
	if strings.TrimSpace(req.Gender) == "" {
		return "gender is required"
	}
	if strings.TrimSpace(req.Goal) == "" {
		return "goal is required"
	}
	if strings.TrimSpace(req.Experience) == "" {
		return "experience is required"
	}
	if strings.TrimSpace(req.Equipment) == "" {
		return "equipment is required"
	}
	return ""
}

func validateGenerateWorkoutRequest(req generateWorkoutRequest) string {
	if req.Age <= 0 {
		return "age must be greater than 0"
	}
	if strings.TrimSpace(req.Gender) == "" {
		return "gender is required"
	}
	if strings.TrimSpace(req.Goal) == "" {
		return "goal is required"
	}
	if strings.TrimSpace(req.Experience) == "" {
		return "experience is required"
	}
	if strings.TrimSpace(req.Equipment) == "" {
		return "equipment is required"
	}
	if req.Frequency <= 0 {
		return "frequency must be greater than 0"
	}
	return ""
}
