package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"surveikita_web/internals/features/surveys/collector"
	"surveikita_web/internals/features/surveys/dto"
	"surveikita_web/internals/features/surveys/normalizer"
	"surveikita_web/internals/features/surveys/service"
	"surveikita_web/internals/views"
)

type SurveyFetcher interface {
	FetchBySlug(ctx context.Context, surveyID, slug string) (normalizer.Survey, error)
}

// form yang sudah sukses diingat selama ini; kirim ulang token yang sama tidak diteruskan
const submittedFormTTL = 10 * time.Minute

type SurveyPageController struct {
	Surveys   SurveyFetcher
	Submitter collector.Submitter
	Options   collector.Options

	guard *submitGuard
}

func NewSurveyPageController(surveys SurveyFetcher, submitter collector.Submitter) *SurveyPageController {
	return &SurveyPageController{
		Surveys:   surveys,
		Submitter: submitter,
		guard:     newSubmitGuard(submittedFormTTL),
	}
}

// =======================
// 📄 GET /:surveyId/:surveySlug
// =======================
func (ctrl *SurveyPageController) Show(c *fiber.Ctx) error {
	surveyID, slug := c.Params("surveyId"), c.Params("surveySlug")

	survey, done, err := ctrl.load(c, surveyID, slug)
	if done || err != nil {
		return err
	}

	sess := collector.NewSession(surveyID, survey.Groups, nil, nil, ctrl.Options)
	defer sess.Close()

	view := dto.ToSurveyFormView(survey, slug, sess)
	view.FormToken = uuid.NewString()

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render("surveys/form", view, views.Layout)
}

// =======================
// 📨 POST /:surveyId/:surveySlug
// Form: form_token, name, job, gender, age, education, consent, answer[<sub_aspect_id>]
// Satu form_token hanya boleh punya satu pengiriman yang berjalan.
// =======================
func (ctrl *SurveyPageController) Submit(c *fiber.Ctx) error {
	surveyID, slug := c.Params("surveyId"), c.Params("surveySlug")

	survey, done, err := ctrl.load(c, surveyID, slug)
	if done || err != nil {
		return err
	}

	// navigator nil: redirect diserahkan ke browser lewat header Refresh
	sess := collector.NewSession(surveyID, survey.Groups, ctrl.Submitter, nil, ctrl.Options)
	defer sess.Close()

	if err := applyForm(c, sess); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// form tanpa token (halaman lama di cache) tetap diproses, hanya tanpa deteksi dobel
	token := strings.TrimSpace(c.FormValue("form_token"))
	if token == "" {
		token = uuid.NewString()
	}
	key := guardKey(surveyID, token)

	pending, owner := ctrl.guard.begin(key)
	if !owner {
		return ctrl.awaitDuplicate(c, survey, slug, sess, token, pending)
	}

	ctx := service.WithRequestID(c.UserContext(), requestID(c))
	err = sess.Submit(ctx)
	ctrl.guard.finish(key, pending, err == nil)

	var problem *collector.Problem
	switch {
	case err == nil:
		return renderSuccess(c, survey, sess)

	case errors.As(err, &problem):
		zap.L().Info("submit survey ditolak",
			zap.String("survey_id", surveyID),
			zap.String("problem", problem.Title),
			zap.Int("upstream_status", problem.Status))
		view := dto.ToSurveyFormView(survey, slug, sess)
		view.FormToken = token
		return c.Status(problemStatus(problem)).Render("surveys/form", view, views.Layout)

	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

const (
	DuplicateTitle   = "Form sedang dikirim"
	DuplicateMessage = "Form ini sudah dikirim dari tab atau klik sebelumnya dan belum berhasil. Periksa jawaban lalu kirim ulang."
)

// awaitDuplicate: POST kedua ikut hasil POST pertama. Sukses → halaman sukses
// tanpa request baru ke backend; selain itu 409 dengan form terisi.
func (ctrl *SurveyPageController) awaitDuplicate(c *fiber.Ctx, survey normalizer.Survey, slug string, sess *collector.Session, token string, pending *pendingSubmit) error {
	select {
	case <-pending.done:
		if pending.ok {
			return renderSuccess(c, survey, sess)
		}
	case <-c.UserContext().Done():
	}

	zap.L().Info("submit survey dobel ditahan", zap.String("survey_id", sess.SurveyID()))
	view := dto.ToSurveyFormView(survey, slug, sess)
	view.FormToken = token
	view.Alert = &dto.AlertView{Title: DuplicateTitle, Message: DuplicateMessage, Failure: true}
	return c.Status(fiber.StatusConflict).Render("surveys/form", view, views.Layout)
}

func renderSuccess(c *fiber.Ctx, survey normalizer.Survey, sess *collector.Session) error {
	to, delay := sess.Redirect()
	c.Set("Refresh", fmt.Sprintf("%d; url=%s", int(math.Ceil(delay.Seconds())), to))

	view := dto.ToSurveySuccessView(survey, sess)
	view.Notice = collector.SuccessMessage
	return c.Render("surveys/success", view, views.Layout)
}

// load mengambil survey; done=true berarti response (404/nonaktif) sudah ditulis.
func (ctrl *SurveyPageController) load(c *fiber.Ctx, surveyID, slug string) (normalizer.Survey, bool, error) {
	survey, err := ctrl.Surveys.FetchBySlug(c.UserContext(), surveyID, slug)
	if errors.Is(err, service.ErrSurveyNotFound) {
		return survey, true, c.Status(fiber.StatusNotFound).
			Render("pages/not_found", fiber.Map{"PageTitle": "Tidak ditemukan"}, views.Layout)
	}
	if err != nil {
		zap.L().Error("❌ gagal memuat survey", zap.String("survey_id", surveyID), zap.Error(err))
		return survey, true, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !survey.Active {
		return survey, true, c.Render("surveys/inactive", dto.ToSurveyInactiveView(survey), views.Layout)
	}
	return survey, false, nil
}

func applyForm(c *fiber.Ctx, sess *collector.Session) error {
	if err := sess.SetRespondent(collector.Respondent{
		Name:      c.FormValue("name"),
		Job:       c.FormValue("job"),
		Gender:    c.FormValue("gender"),
		Age:       c.FormValue("age"),
		Education: c.FormValue("education"),
	}); err != nil {
		return err
	}

	consent := strings.TrimSpace(c.FormValue("consent"))
	if err := sess.SetConsent(consent == "true" || consent == "on"); err != nil {
		return err
	}

	// hanya id yang dikenal session & opsi jawaban resmi; input lain diabaikan
	for id := range sess.Answers() {
		if v := strings.TrimSpace(c.FormValue("answer[" + id + "]")); slices.Contains(collector.AnswerOptions, v) {
			if err := sess.Answer(id, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func problemStatus(p *collector.Problem) int {
	switch {
	case p.Local():
		return fiber.StatusUnprocessableEntity
	case p.Kind == collector.ProblemConsentRequired:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("reqid").(string)
	return id
}
