// Command seed initializes the schema and loads the demo data set: one
// admin, two doctors, three patients and the shared-patient assignments.
// Running it against an already seeded database is a no-op.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/repository/postgres"
	"github.com/jwalitptl/patient-portal/internal/service/auth"
)

const schemaFile = "migrations/schema.sql"

type seedUser struct {
	username string
	password string
	fullName string
	email    string
	role     string
	dob      string
	phone    string
	notes    string
}

var seedUsers = []seedUser{
	{"admin", "admin123", "System Administrator", "admin@hospital.com", model.RoleAdmin, "", "", ""},
	{"dr_smith", "doctor123", "Dr. Sarah Smith", "dr.smith@hospital.com", model.RoleDoctor, "", "", ""},
	{"dr_jones", "doctor123", "Dr. Michael Jones", "dr.jones@hospital.com", model.RoleDoctor, "", "", ""},
	{"john_doe", "patient123", "John Doe", "john.doe@email.com", model.RolePatient, "1985-03-12", "555-0101", "Hypertension, on medication."},
	{"jane_wilson", "patient123", "Jane Wilson", "jane.wilson@email.com", model.RolePatient, "1992-07-28", "555-0102", "Type 1 diabetes, quarterly checkups."},
	{"bob_brown", "patient123", "Bob Brown", "bob.brown@email.com", model.RolePatient, "1978-11-05", "555-0103", "Recovering from knee surgery."},
}

var seedAssignments = [][2]string{
	{"dr_smith", "john_doe"},
	{"dr_smith", "jane_wilson"},
	{"dr_jones", "jane_wilson"},
	{"dr_jones", "bob_brown"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", schemaFile).Msg("failed to read schema")
	}
	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	base := postgres.NewBaseRepository(db)
	roleRepo := postgres.NewRoleRepository(base)
	userRepo := postgres.NewUserRepository(base)
	assignmentRepo := postgres.NewAssignmentRepository(base)

	ctx := context.Background()

	if _, err := roleRepo.GetByName(ctx, model.RoleAdmin); err == nil {
		log.Info().Msg("database already seeded, skipping")
		return
	}

	roles := map[string]*model.Role{}
	for _, name := range []string{model.RoleAdmin, model.RoleDoctor, model.RolePatient} {
		role := &model.Role{Name: name}
		if err := roleRepo.Create(ctx, role); err != nil {
			log.Fatal().Err(err).Str("role", name).Msg("failed to create role")
		}
		roles[name] = role
	}

	userIDs := map[string]*model.User{}
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.password)
		if err != nil {
			log.Fatal().Err(err).Str("username", su.username).Msg("failed to hash password")
		}

		user := &model.User{
			Username:     su.username,
			PasswordHash: hash,
			FullName:     su.fullName,
			Email:        su.email,
			RoleID:       roles[su.role].ID,
			RoleName:     su.role,
		}

		if su.role == model.RolePatient {
			details := &model.PatientDetails{
				MedicalNotes: su.notes,
				Phone:        su.phone,
			}
			if su.dob != "" {
				dob, err := time.Parse("2006-01-02", su.dob)
				if err != nil {
					log.Fatal().Err(err).Str("username", su.username).Msg("bad seed date of birth")
				}
				details.DateOfBirth = &dob
			}
			err = userRepo.CreateWithPatientDetails(ctx, user, details)
		} else {
			err = userRepo.Create(ctx, user)
		}
		if err != nil {
			log.Fatal().Err(err).Str("username", su.username).Msg("failed to create user")
		}

		userIDs[su.username] = user
		log.Info().Str("username", su.username).Str("role", su.role).Msg("created user")
	}

	seedAssignmentRows(ctx, assignmentRepo, userIDs)

	log.Info().Msg("seed complete")
}

func seedAssignmentRows(ctx context.Context, repo repository.AssignmentRepository, users map[string]*model.User) {
	for _, pair := range seedAssignments {
		assignment := &model.Assignment{
			DoctorID:  users[pair[0]].ID,
			PatientID: users[pair[1]].ID,
		}
		if err := repo.Create(ctx, assignment); err != nil {
			if apperror.IsConflict(err) {
				continue
			}
			log.Fatal().Err(err).
				Str("doctor", pair[0]).
				Str("patient", pair[1]).
				Msg("failed to create assignment")
		}
		log.Info().Str("doctor", pair[0]).Str("patient", pair[1]).Msg("assigned")
	}
}
