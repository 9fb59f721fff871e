package main

import (
	"context"
	"emr-service/internal/app/services/core/medical_records"
	"emr-service/internal/app/services/core/patients"
	"emr-service/internal/app/services/shared/drafts"
	"emr-service/internal/app/services/shared/events"
	"emr-service/internal/app/services/shared/locker"
	"emr-service/internal/pkg/dto/requests"
	"emr-service/internal/pkg/dto/responses"
	"emr-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const cliWorkspaceID = "emrctl"

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <nik>",
		Short: "Fetch the patient record for a NIK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &requests.SearchPatient{NIK: args[0]}
			if err := patients.ValidateSearchNIK(request); err != nil {
				return errors.New(exceptions.UserMessage(err))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			directory := patients.NewPatientDirectory(a.client, a.log)
			record, err := directory.Fetch(ctx, request.NIK)
			if err != nil {
				return errors.New(exceptions.UserMessage(err))
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an encounter draft without sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := a.readDraft(cmd)
			if err != nil {
				return err
			}

			encounter, err := a.validator().Validate(draft)
			if err != nil {
				var validationErrs exceptions.ValidationErrors
				if errors.As(err, &validationErrs) {
					_ = writeJSON(cmd.OutOrStdout(), validationErrs)
				}
				return fmt.Errorf("draft is invalid: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), responses.MedicalRecordValidation{Valid: true, Encounter: encounter})
		},
	}
	cmd.Flags().StringP(flagFile, "f", "", "draft JSON file, - for stdin")
	return cmd
}

func (a *app) submitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <nik>",
		Short: "Validate an encounter draft and append it to the patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nik := args[0]
			if err := patients.ValidateSearchNIK(&requests.SearchPatient{NIK: nik}); err != nil {
				return errors.New(exceptions.UserMessage(err))
			}

			draft, err := a.readDraft(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*a.timeout)
			defer cancel()

			directory := patients.NewPatientDirectory(a.client, a.log)
			if _, err := directory.Fetch(ctx, nik); err != nil {
				return errors.New(exceptions.UserMessage(err))
			}

			submission := medical_records.NewMedicalRecordSubmission(
				cliWorkspaceID,
				a.client,
				directory,
				a.validator(),
				locker.NewMemoryLockService(a.log),
				drafts.NewMemoryDraftStore(time.Hour),
				events.NewLogEventPublisher(a.log),
				time.Minute,
				a.log,
			)

			result, err := submission.Process(ctx, nik, draft)
			if result != nil {
				_ = writeJSON(cmd.OutOrStdout(), responses.MedicalRecordSubmission{
					NIK:    nik,
					Result: result,
					State:  submission.State(),
				})
			}
			if err != nil {
				return errors.New(exceptions.UserMessage(err))
			}
			return nil
		},
	}
	cmd.Flags().StringP(flagFile, "f", "", "draft JSON file, - for stdin")
	return cmd
}

func (a *app) validator() *medical_records.EncounterValidator {
	return medical_records.NewEncounterValidator(medical_records.WithLocation(a.location))
}

func (a *app) readDraft(cmd *cobra.Command) (*requests.DraftEncounter, error) {
	path, _ := cmd.Flags().GetString(flagFile)
	raw, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	draft := new(requests.DraftEncounter)
	if err := json.Unmarshal(raw, draft); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return draft, nil
}
