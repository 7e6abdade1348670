package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/openpress/editorial/internal/domain/decision"
	"github.com/openpress/editorial/internal/domain/entity"
	"github.com/openpress/editorial/pkg/utils"
)

// validateEmailActions runs the reusable email-action checks shared by all
// decision types: required fields, address syntax, attachment references.
// Failures are recorded as field errors; the returned error is only for
// storage problems while probing files.
func (s *decisionServiceImpl) validateEmailActions(
	ctx context.Context,
	actions []decision.EmailAction,
	submission *entity.Submission,
	uploaderID int64,
	allowedStages []entity.FileStage,
	errs decision.FieldErrors,
) error {
	for _, a := range actions {
		if !utils.IsAlphabetic(a.ID) {
			errs.Add("id", fmt.Sprintf("%q is not a valid action id.", a.ID))
		}
		if strings.TrimSpace(a.Subject) == "" {
			errs.Add("subject", "A subject is required.")
		}
		if strings.TrimSpace(a.Body) == "" {
			errs.Add("body", "An email body is required.")
		}

		for field, addrs := range map[string][]string{"to": a.To, "cc": a.CC, "bcc": a.BCC} {
			for _, addr := range addrs {
				if !utils.IsEmailOrLocalhost(addr) {
					errs.Add(field, fmt.Sprintf("%s is not a valid email address.", addr))
				}
			}
		}

		for _, ref := range a.Attachments {
			if err := s.validateAttachment(ctx, ref, submission, uploaderID, allowedStages, errs); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateAttachment checks that the reference points at exactly one file
// source and that the file passes its ownership or visibility check.
func (s *decisionServiceImpl) validateAttachment(
	ctx context.Context,
	ref decision.AttachmentRef,
	submission *entity.Submission,
	uploaderID int64,
	allowedStages []entity.FileStage,
	errs decision.FieldErrors,
) error {
	sources := 0
	if ref.TemporaryFileID != nil {
		sources++
	}
	if ref.SubmissionFileID != nil {
		sources++
	}
	if ref.LibraryFileID != nil {
		sources++
	}
	if sources != 1 {
		errs.Add("attachments", fmt.Sprintf("%s must reference exactly one file.", ref.DisplayName()))
		return nil
	}

	switch {
	case ref.TemporaryFileID != nil:
		f, err := s.files.TemporaryFile(ctx, *ref.TemporaryFileID)
		if err != nil {
			return err
		}
		if f == nil || f.UserID != uploaderID {
			errs.Add("attachments", fmt.Sprintf("%s is not an uploaded file owned by you.", ref.DisplayName()))
		}

	case ref.SubmissionFileID != nil:
		f, err := s.files.SubmissionFile(ctx, *ref.SubmissionFileID)
		if err != nil {
			return err
		}
		if f == nil || f.SubmissionID != submission.ID || !fileStageAllowed(f.FileStage, allowedStages) {
			errs.Add("attachments", fmt.Sprintf("%s is not a file that can be attached from this submission.", ref.DisplayName()))
		}

	case ref.LibraryFileID != nil:
		f, err := s.files.LibraryFile(ctx, *ref.LibraryFileID)
		if err != nil {
			return err
		}
		if f == nil || f.ContextID != submission.ContextID ||
			(f.SubmissionID != nil && *f.SubmissionID != submission.ID) {
			errs.Add("attachments", fmt.Sprintf("%s is not a library file available to this submission.", ref.DisplayName()))
		}
	}
	return nil
}

func fileStageAllowed(stage entity.FileStage, allowed []entity.FileStage) bool {
	for _, fs := range allowed {
		if fs == stage {
			return true
		}
	}
	return false
}

// ValidateRecipients checks that every id resolves to a user. When any does
// not, one combined error names every recipient — resolved display names,
// raw ids for the rest — joined with the locale's list separator.
func (s *decisionServiceImpl) ValidateRecipients(ctx context.Context, field string, ids []int64, locale string, errs decision.FieldErrors) error {
	names := make([]string, 0, len(ids))
	missing := false
	for _, id := range ids {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			missing = true
			names = append(names, strconv.FormatInt(id, 10))
			continue
		}
		names = append(names, u.FullName())
	}
	if missing {
		errs.Add(field, fmt.Sprintf("Not all recipients could be found: %s.", utils.JoinList(locale, names)))
	}
	return nil
}
