package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"bdl-cms/cache"
	"bdl-cms/consolidated"
	"bdl-cms/models"
	"bdl-cms/repositories"
	"bdl-cms/test/testdb"
)

var (
	admin  = models.NewSession(1, "admin", models.Standard(models.RoleAdmin))
	bureau = models.NewSession(2, "bureau", models.Standard(models.RoleBureau))
	membre = models.NewSession(3, "membre", models.Standard(models.RoleMembre))
	eleve  = models.NewSession(4, "eleve", models.Standard(models.RoleEleve))
	vp     = models.NewSession(5, "vp", models.Custom("Vice-président"))
)

type ServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	ctx   context.Context
	log   *logrus.Logger
	cache *cache.MemoryCache
}

func (s *ServiceTestSuite) SetupTest() {
	s.db = testdb.Open(s.T())
	s.ctx = context.Background()
	s.log = logrus.New()
	s.log.SetOutput(io.Discard)
	s.cache = cache.NewMemoryCache(time.Minute, 0)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.cache.Close()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) journal() JournalService {
	return NewJournalService(repositories.NewJournalRepository(s.db), s.cache, s.log, time.UTC)
}

func (s *ServiceTestSuite) TestRegisterRoles() {
	svc := NewAuthService(repositories.NewUserRepository(s.db))
	requested := models.Standard(models.RoleBureau)

	first, err := svc.Register(s.ctx, models.RegisterRequest{Username: "alice", Email: "Alice@Lycee.fr", Password: "secret1"}, models.Session{})
	s.Require().NoError(err)
	s.True(first.User.Role.Is(models.RoleAdmin))
	s.Equal("alice@lycee.fr", first.User.Email)
	s.NotEmpty(first.Token)

	second, err := svc.Register(s.ctx, models.RegisterRequest{Username: "bob", Email: "bob@lycee.fr", Password: "secret1", Role: &requested}, models.Session{})
	s.Require().NoError(err)
	s.True(second.User.Role.Is(models.RoleEleve))

	third, err := svc.Register(s.ctx, models.RegisterRequest{Username: "carol", Email: "carol@lycee.fr", Password: "secret1", Role: &requested}, admin)
	s.Require().NoError(err)
	s.True(third.User.Role.Is(models.RoleBureau))

	_, err = svc.Register(s.ctx, models.RegisterRequest{Username: "bob", Email: "other@lycee.fr", Password: "secret1"}, models.Session{})
	s.ErrorIs(err, models.ErrConflict)
}

func (s *ServiceTestSuite) TestLoginAndRoles() {
	svc := NewAuthService(repositories.NewUserRepository(s.db))
	reg, err := svc.Register(s.ctx, models.RegisterRequest{Username: "alice", Email: "alice@lycee.fr", Password: "secret1"}, models.Session{})
	s.Require().NoError(err)
	other, err := svc.Register(s.ctx, models.RegisterRequest{Username: "bob", Email: "bob@lycee.fr", Password: "secret1"}, models.Session{})
	s.Require().NoError(err)

	res, err := svc.Login(s.ctx, models.LoginRequest{Email: "alice@lycee.fr", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal(reg.User.ID, res.User.ID)

	_, err = svc.Login(s.ctx, models.LoginRequest{Email: "alice@lycee.fr", Password: "wrong"})
	s.ErrorIs(err, models.ErrUnauthorized)
	_, err = svc.Login(s.ctx, models.LoginRequest{Email: "nobody@lycee.fr", Password: "secret1"})
	s.ErrorIs(err, models.ErrUnauthorized)

	caller := models.NewSession(reg.User.ID, "alice", reg.User.Role)
	s.Require().NoError(svc.SetRole(s.ctx, other.User.ID, models.Custom("Trésorier"), caller))
	user, err := svc.GetUserByID(s.ctx, other.User.ID)
	s.Require().NoError(err)
	s.Equal("custom:Trésorier", user.Role.String())

	s.ErrorIs(svc.SetRole(s.ctx, reg.User.ID, models.Standard(models.RoleMembre), caller), models.ErrInvalid)
	s.ErrorIs(svc.SetRole(s.ctx, reg.User.ID, models.Standard(models.RoleMembre), eleve), models.ErrForbidden)

	_, err = svc.ListUsers(s.ctx, eleve)
	s.ErrorIs(err, models.ErrForbidden)
}

func (s *ServiceTestSuite) TestJournalCreate() {
	svc := s.journal()
	req := models.CreateJournalRequest{
		Title:     "Règlement intérieur",
		NorNumber: "BDL2501",
		BodyHTML:  `<h2>Article 1</h2><p onclick="x()">Le bureau se réunit.</p><script>alert(1)</script>`,
	}

	_, err := svc.Create(s.ctx, req, membre)
	s.ErrorIs(err, models.ErrForbidden)

	entry, err := svc.Create(s.ctx, req, bureau)
	s.Require().NoError(err)
	s.Equal(`<h2>Article 1</h2><p>Le bureau se réunit.</p>`, entry.BodyHTML)
	s.Equal("bureau", entry.AuthorName)
	s.False(entry.PublicationDate.IsZero())

	_, err = svc.Create(s.ctx, req, bureau)
	s.ErrorIs(err, models.ErrConflict)
}

func (s *ServiceTestSuite) TestJournalAmendRecordsModification() {
	svc := s.journal()
	entry, err := svc.Create(s.ctx, models.CreateJournalRequest{
		Title:     "Statuts",
		NorNumber: "BDL2502",
		BodyHTML:  `<h2>Article 1</h2><p>Le bureau se réunit chaque mois.</p>`,
	}, bureau)
	s.Require().NoError(err)

	amend := models.AmendJournalRequest{BodyHTML: `<h2>Article 1</h2><p>Le bureau se réunit chaque semaine.</p>`}
	_, err = svc.Amend(s.ctx, entry.ID, amend, eleve)
	s.ErrorIs(err, models.ErrForbidden)

	amended, err := svc.Amend(s.ctx, entry.ID, amend, bureau)
	s.Require().NoError(err)
	s.Require().Len(amended.Modifications, 1)
	s.Equal(amend.BodyHTML, amended.BodyHTML)

	mod := amended.Modifications[0]
	_, ok := mod.Time()
	s.True(ok)
	s.Contains(amended.BodyHTML, consolidated.CurrentText(mod.Diff))

	unchanged, err := svc.Amend(s.ctx, entry.ID, amend, bureau)
	s.Require().NoError(err)
	s.Len(unchanged.Modifications, 1)

	view, err := svc.Consolidated(s.ctx, entry.ID, consolidated.Options{Tracked: true, ShowHistory: true})
	s.Require().NoError(err)
	s.Require().Len(view.Outline, 1)
	s.Equal("Article 1", view.Outline[0].Title)
	content := string(view.Outline[0].Content)
	s.Contains(content, `<del class="mod-removed">mois.</del>`)
	s.Contains(content, `<ins class="mod-added">semaine.</ins>`)
	s.Require().NotNil(view.History)
	s.Equal(1, view.History.Count)
	s.Len(view.History.Items, 1)
}

func (s *ServiceTestSuite) TestJournalConcurrentAmendsKeepEveryModification() {
	svc := s.journal()
	entry, err := svc.Create(s.ctx, models.CreateJournalRequest{
		Title:     "Ordre du jour",
		NorNumber: "BDL2510",
		BodyHTML:  "<p>Version 0</p>",
	}, bureau)
	s.Require().NoError(err)

	const editors = 8
	var wg sync.WaitGroup
	errs := make(chan error, editors)
	for i := 1; i <= editors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Amend(s.ctx, entry.ID, models.AmendJournalRequest{
				BodyHTML: fmt.Sprintf("<p>Version %d</p>", i),
			}, bureau)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	got, err := svc.Get(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Len(got.Modifications, editors)
	for _, mod := range got.Modifications {
		s.NotEmpty(mod.Diff)
	}

	_, err = svc.Amend(s.ctx, 9999, models.AmendJournalRequest{BodyHTML: "<p>x</p>"}, bureau)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *ServiceTestSuite) TestJournalOverwrite() {
	svc := s.journal()
	entry, err := svc.Create(s.ctx, models.CreateJournalRequest{Title: "Budget", NorNumber: "BDL2503", BodyHTML: "<p>100 euros</p>"}, admin)
	s.Require().NoError(err)

	req := models.AmendJournalRequest{Title: "Budget 2025", BodyHTML: "<p>150 euros</p>"}
	_, err = svc.Overwrite(s.ctx, entry.ID, req, bureau)
	s.ErrorIs(err, models.ErrForbidden)

	got, err := svc.Overwrite(s.ctx, entry.ID, req, admin)
	s.Require().NoError(err)
	s.Empty(got.Modifications)
	s.Equal("Budget 2025", got.Title)
	s.Equal("<p>150 euros</p>", got.BodyHTML)

	s.ErrorIs(svc.Delete(s.ctx, entry.ID, bureau), models.ErrForbidden)
	s.NoError(svc.Delete(s.ctx, entry.ID, admin))
	_, err = svc.Get(s.ctx, entry.ID)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *ServiceTestSuite) TestConsolidatedHTMLCachesDefaultView() {
	svc := s.journal()
	_, err := svc.Create(s.ctx, models.CreateJournalRequest{Title: "Statuts", NorNumber: "BDL2504", BodyHTML: "<h1>Titre</h1><p>Texte</p>"}, admin)
	s.Require().NoError(err)

	page, err := svc.ConsolidatedHTML(s.ctx, "BDL2504", consolidated.Options{})
	s.Require().NoError(err)
	s.Contains(string(page), "NOR : BDL2504")
	s.Equal(1, s.cache.Len())

	again, err := svc.ConsolidatedHTML(s.ctx, "BDL2504", consolidated.Options{})
	s.Require().NoError(err)
	s.Equal(page, again)

	_, err = svc.ConsolidatedHTML(s.ctx, "BDL2504", consolidated.Options{Tracked: true})
	s.Require().NoError(err)
	s.Equal(1, s.cache.Len())

	_, err = svc.ConsolidatedHTML(s.ctx, "BDL9999", consolidated.Options{})
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *ServiceTestSuite) TestNews() {
	svc := NewNewsService(repositories.NewNewsRepository(s.db))

	first, err := svc.Create(s.ctx, models.CreateNewsRequest{Title: "Fête de l'été", Body: "Du **soleil**", Format: models.FormatMarkdown, Published: true}, bureau)
	s.Require().NoError(err)
	s.Equal("fete-de-l-ete", first.Slug)
	s.Contains(first.BodyHTML, "<strong>soleil</strong>")
	s.NotNil(first.PublishedAt)

	second, err := svc.Create(s.ctx, models.CreateNewsRequest{Title: "Fête de l'été", Body: "<p>Brouillon</p>"}, bureau)
	s.Require().NoError(err)
	s.Equal("fete-de-l-ete-2", second.Slug)
	s.Nil(second.PublishedAt)

	_, err = svc.Get(s.ctx, second.ID, true)
	s.ErrorIs(err, models.ErrNotFound)
	_, err = svc.Get(s.ctx, second.ID, false)
	s.NoError(err)

	items, total, err := svc.List(s.ctx, models.NewsListParams{Page: 1, Limit: 10}, true)
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(first.ID, items[0].ID)

	_, err = svc.Create(s.ctx, models.CreateNewsRequest{Title: "x", Body: "y"}, membre)
	s.ErrorIs(err, models.ErrForbidden)
}

func (s *ServiceTestSuite) TestEvents() {
	paris, err := time.LoadLocation("Europe/Paris")
	s.Require().NoError(err)
	svc := NewEventService(repositories.NewEventRepository(s.db), paris, "https://bdl.example.org")

	_, err = svc.Create(s.ctx, models.CreateEventRequest{
		Title:    "Inversé",
		StartsAt: time.Date(2025, 3, 10, 18, 0, 0, 0, paris),
		EndsAt:   time.Date(2025, 3, 10, 17, 0, 0, 0, paris),
	}, bureau)
	s.ErrorIs(err, models.ErrInvalid)

	ag, err := svc.Create(s.ctx, models.CreateEventRequest{
		Title:    "Assemblée générale",
		StartsAt: time.Date(2025, 3, 10, 18, 0, 0, 0, paris),
		EndsAt:   time.Date(2025, 3, 10, 20, 0, 0, 0, paris),
	}, bureau)
	s.Require().NoError(err)
	s.Equal(time.UTC, ag.StartsAt.Location())

	grid, err := svc.Month(s.ctx, 2025, 3)
	s.Require().NoError(err)
	found := false
	for _, week := range grid.Weeks {
		for _, d := range week {
			if d.Date.Day() == 10 && d.InMonth {
				s.Require().Len(d.Events, 1)
				s.Equal(ag.ID, d.Events[0].ID)
				found = true
			} else if d.InMonth {
				s.Empty(d.Events, d.Date.String())
			}
		}
	}
	s.True(found)

	_, err = svc.Month(s.ctx, 2025, 13)
	s.ErrorIs(err, models.ErrInvalid)

	svc.(*eventService).now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	ics, err := svc.ICS(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, strings.Count(ics, "BEGIN:VEVENT"))
	s.Contains(ics, "UID:event-1@bdl.example.org")
}

func (s *ServiceTestSuite) TestScrutin() {
	svc := NewScrutinService(repositories.NewScrutinRepository(s.db), s.log)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.(*scrutinService).now = func() time.Time { return now }

	_, err := svc.Create(s.ctx, models.CreateScrutinRequest{Title: "Budget"}, membre)
	s.ErrorIs(err, models.ErrForbidden)
	_, err = svc.Create(s.ctx, models.CreateScrutinRequest{Title: "Budget", OpensAt: now, ClosesAt: now.Add(-time.Hour)}, bureau)
	s.ErrorIs(err, models.ErrInvalid)

	sc, err := svc.Create(s.ctx, models.CreateScrutinRequest{Title: "Budget", OpensAt: now.Add(-time.Hour), ClosesAt: now.Add(time.Hour)}, bureau)
	s.Require().NoError(err)

	_, err = svc.Cast(s.ctx, sc.ID, models.CastBallotRequest{Choice: models.ChoicePour}, eleve)
	s.ErrorIs(err, models.ErrForbidden)

	res, err := svc.Cast(s.ctx, sc.ID, models.CastBallotRequest{Choice: models.ChoicePour}, membre)
	s.Require().NoError(err)
	s.Equal(1, res.Tally.Pour)
	s.Equal("Adopté", res.Badge)

	_, err = svc.Cast(s.ctx, sc.ID, models.CastBallotRequest{Choice: models.ChoiceContre}, membre)
	s.ErrorIs(err, models.ErrConflict)

	for _, voter := range []models.Session{bureau, vp} {
		_, err = svc.Cast(s.ctx, sc.ID, models.CastBallotRequest{Choice: models.ChoiceContre}, voter)
		s.Require().NoError(err)
	}

	res, err = svc.Results(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.Equal(3, res.Tally.Exprimes)
	s.Equal(2, res.Tally.MajoriteAbsolue)
	s.False(res.Tally.Adopted)
	s.Equal("Rejeté", res.Badge)
	s.True(res.Open)

	now = now.Add(2 * time.Hour)
	n, err := svc.CloseExpired(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, n)

	_, err = svc.Cast(s.ctx, sc.ID, models.CastBallotRequest{Choice: models.ChoicePour}, admin)
	s.ErrorIs(err, models.ErrClosed)

	res, err = svc.Results(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.True(res.Scrutin.Closed)
	s.False(res.Open)
}

func (s *ServiceTestSuite) TestScrutinWithoutBallots() {
	svc := NewScrutinService(repositories.NewScrutinRepository(s.db), s.log)
	sc, err := svc.Create(s.ctx, models.CreateScrutinRequest{Title: "Vide"}, admin)
	s.Require().NoError(err)

	res, err := svc.Results(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.False(res.Tally.Decided)
	s.Empty(res.Badge)
}

func (s *ServiceTestSuite) TestSurvey() {
	svc := NewSurveyService(repositories.NewSurveyRepository(s.db))

	_, err := svc.Create(s.ctx, models.CreateSurveyRequest{
		Title:     "Doublons",
		Questions: []models.CreateSurveyQuestion{{Label: "?", Options: []string{"oui", "oui"}}},
	}, bureau)
	s.ErrorIs(err, models.ErrInvalid)

	survey, err := svc.Create(s.ctx, models.CreateSurveyRequest{
		Title:  "Foyer",
		Active: true,
		Questions: []models.CreateSurveyQuestion{
			{Label: "Ouverture le midi ?", Options: []string{"oui", "non"}},
			{Label: "Musique ?", Options: []string{"calme", "forte", "aucune"}},
		},
	}, bureau)
	s.Require().NoError(err)
	q1, q2 := survey.Questions[0].ID, survey.Questions[1].ID

	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "peut-être"}}}, eleve), models.ErrInvalid)
	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: 999, Option: "oui"}}}, eleve), models.ErrInvalid)
	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "oui"}, {QuestionID: q1, Option: "non"}}}, eleve), models.ErrInvalid)
	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "oui"}}}, models.Session{}), models.ErrUnauthorized)

	s.Require().NoError(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "oui"}, {QuestionID: q2, Option: "calme"}}}, eleve))
	s.Require().NoError(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "oui"}}}, membre))
	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "non"}}}, eleve), models.ErrConflict)

	results, err := svc.Results(s.ctx, survey.ID)
	s.Require().NoError(err)
	s.Equal(2, results.Responses)
	s.Equal(map[string]int{"oui": 2, "non": 0}, results.Questions[0].Counts)
	s.Equal(2, results.Questions[0].Total)
	s.Equal(map[string]int{"calme": 1, "forte": 0, "aucune": 0}, results.Questions[1].Counts)

	s.Require().NoError(svc.SetActive(s.ctx, survey.ID, false, admin))
	s.ErrorIs(svc.Respond(s.ctx, survey.ID, models.SurveyResponseRequest{Answers: []models.SurveyAnswer{{QuestionID: q1, Option: "oui"}}}, vp), models.ErrClosed)
}
