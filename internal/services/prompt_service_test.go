package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/imharishpatil/Prompthub-sub000/internal/dto"
	"github.com/imharishpatil/Prompthub-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestPromptService(t *testing.T) (*PromptService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPromptService(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.Split(email, "@")[0],
		Password:     "irrelevant-hash",
		AuthProvider: "email",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createTestPrompt(t *testing.T, svc *PromptService, authorID uuid.UUID, public bool) *models.Prompt {
	t.Helper()
	prompt, err := svc.CreatePrompt(authorID, &dto.CreatePromptRequest{
		Title:   "Summarize a paper",
		Content: "Summarize the following paper in three bullet points: {{paper}}",
		Tags:    []string{"summarization", "research"},
		Public:  public,
	})
	require.NoError(t, err)
	return prompt
}

func TestCreatePrompt(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	prompt := createTestPrompt(t, svc, author, true)
	assert.Equal(t, author, prompt.AuthorID)
	assert.True(t, prompt.Public)
	assert.Nil(t, prompt.RemixOf)
	assert.Equal(t, 0, prompt.RemixCount)
	assert.JSONEq(t, `["summarization","research"]`, string(prompt.Tags))
}

func TestCreatePrompt_Validation(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	_, err := svc.CreatePrompt(author, &dto.CreatePromptRequest{Content: "body"})
	require.ErrorContains(t, err, "title is required")

	_, err = svc.CreatePrompt(author, &dto.CreatePromptRequest{Title: "t"})
	require.ErrorContains(t, err, "content is required")

	_, err = svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   strings.Repeat("x", 201),
		Content: "body",
	})
	require.ErrorContains(t, err, "under 200 characters")

	_, err = svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   "t",
		Content: "body",
		Tags:    []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
	})
	require.ErrorContains(t, err, "at most 10 tags")

	_, err = svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   "t",
		Content: "body",
		Tags:    []string{""},
	})
	require.ErrorContains(t, err, "1-50 characters")
}

func TestCreatePrompt_PrivateFlagPersists(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	created := createTestPrompt(t, svc, author, false)

	// Reload from the database: a column default on public would make gorm
	// omit the false value from the INSERT and the row would come back true.
	var stored models.Prompt
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.False(t, stored.Public)
}

func TestCreatePrompt_NilTagsStoredAsEmptyList(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	prompt, err := svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   "t",
		Content: "body",
		Public:  true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(prompt.Tags))
}

func TestRemix_IncrementsParentCounter(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	remixer := createTestUser(t, svc.db, "remixer@x.com")

	parent := createTestPrompt(t, svc, author, true)

	remix, err := svc.CreatePrompt(remixer, &dto.CreatePromptRequest{
		Title:   "Summarize, but shorter",
		Content: "One sentence only: {{paper}}",
		Public:  true,
		RemixOf: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, remix.RemixOf)
	assert.Equal(t, parent.ID, *remix.RemixOf)

	var reloaded models.Prompt
	require.NoError(t, db.First(&reloaded, "id = ?", parent.ID).Error)
	assert.Equal(t, 1, reloaded.RemixCount)
}

func TestRemix_MissingParent(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	ghost := uuid.New()
	_, err := svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   "t",
		Content: "body",
		RemixOf: &ghost,
	})
	require.ErrorIs(t, err, ErrPromptNotFound)

	// The failed remix must not have left a row behind.
	var count int64
	require.NoError(t, db.Model(&models.Prompt{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetPrompt_PrivateVisibleOnlyToAuthor(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	other := createTestUser(t, svc.db, "other@x.com")

	private := createTestPrompt(t, svc, author, false)

	got, err := svc.GetPrompt(private.ID, author)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	// Another user and an anonymous caller both get the same not-found as a
	// missing row, so private prompt ids are not confirmable.
	_, err = svc.GetPrompt(private.ID, other)
	require.ErrorIs(t, err, ErrPromptNotFound)

	_, err = svc.GetPrompt(private.ID, uuid.Nil)
	require.ErrorIs(t, err, ErrPromptNotFound)

	_, err = svc.GetPrompt(uuid.New(), author)
	require.ErrorIs(t, err, ErrPromptNotFound)
}

func TestGetFeed_ExcludesPrivate(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	public := createTestPrompt(t, svc, author, true)
	createTestPrompt(t, svc, author, false)

	prompts, total, err := svc.GetFeed(1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, prompts, 1)
	assert.Equal(t, public.ID, prompts[0].ID)
}

func TestGetFeed_Pagination(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	for i := 0; i < 5; i++ {
		createTestPrompt(t, svc, author, true)
	}

	page1, total, err := svc.GetFeed(1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := svc.GetFeed(3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page3, 1)
}

func TestGetByAuthor_OnlyPublic(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	createTestPrompt(t, svc, author, true)
	createTestPrompt(t, svc, author, false)

	prompts, total, err := svc.GetByAuthor(author, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, prompts, 1)
}

func TestGetMyPrompts_IncludesPrivate(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	other := createTestUser(t, svc.db, "other@x.com")

	createTestPrompt(t, svc, author, true)
	createTestPrompt(t, svc, author, false)
	createTestPrompt(t, svc, other, true)

	prompts, total, err := svc.GetMyPrompts(author, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, prompts, 2)
	for _, p := range prompts {
		assert.Equal(t, author, p.AuthorID)
	}
}

func TestUpdatePrompt_OwnerOnly(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	other := createTestUser(t, svc.db, "other@x.com")

	prompt := createTestPrompt(t, svc, author, true)

	newTitle := "Summarize a paper v2"
	private := false
	updated, err := svc.UpdatePrompt(author, prompt.ID, &dto.UpdatePromptRequest{
		Title:  &newTitle,
		Public: &private,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.False(t, updated.Public)
	assert.Equal(t, prompt.Content, updated.Content, "untouched fields survive partial update")

	_, err = svc.UpdatePrompt(other, prompt.ID, &dto.UpdatePromptRequest{Title: &newTitle})
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.UpdatePrompt(uuid.Nil, prompt.ID, &dto.UpdatePromptRequest{Title: &newTitle})
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.UpdatePrompt(author, uuid.New(), &dto.UpdatePromptRequest{Title: &newTitle})
	require.ErrorIs(t, err, ErrPromptNotFound)
}

func TestUpdatePrompt_RejectsEmptyTitleAndContent(t *testing.T) {
	svc, _ := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	prompt := createTestPrompt(t, svc, author, true)

	empty := ""
	_, err := svc.UpdatePrompt(author, prompt.ID, &dto.UpdatePromptRequest{Title: &empty})
	require.ErrorContains(t, err, "title cannot be empty")

	_, err = svc.UpdatePrompt(author, prompt.ID, &dto.UpdatePromptRequest{Content: &empty})
	require.ErrorContains(t, err, "content cannot be empty")
}

func TestDeletePrompt_OwnerOnly(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	other := createTestUser(t, svc.db, "other@x.com")

	prompt := createTestPrompt(t, svc, author, true)

	require.ErrorIs(t, svc.DeletePrompt(other, prompt.ID), ErrNotAuthorized)
	require.ErrorIs(t, svc.DeletePrompt(uuid.Nil, prompt.ID), ErrNotAuthorized)
	require.ErrorIs(t, svc.DeletePrompt(author, uuid.New()), ErrPromptNotFound)

	require.NoError(t, svc.DeletePrompt(author, prompt.ID))

	var count int64
	require.NoError(t, db.Model(&models.Prompt{}).Where("id = ?", prompt.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeletePrompt_RemovesItsFeedback(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")
	reviewer := createTestUser(t, svc.db, "reviewer@x.com")

	prompt := createTestPrompt(t, svc, author, true)

	feedbackSvc := NewFeedbackService(db, nil)
	_, err := feedbackSvc.CreateFeedback(reviewer, prompt.ID, &dto.CreateFeedbackRequest{
		Rating:  4,
		Comment: "works well",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePrompt(author, prompt.ID))

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Where("prompt_id = ?", prompt.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeletePrompt_KeepsParentRemixCount(t *testing.T) {
	svc, db := newTestPromptService(t)
	author := createTestUser(t, svc.db, "author@x.com")

	parent := createTestPrompt(t, svc, author, true)
	remix, err := svc.CreatePrompt(author, &dto.CreatePromptRequest{
		Title:   "remix",
		Content: "body",
		Public:  true,
		RemixOf: &parent.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePrompt(author, remix.ID))

	var reloaded models.Prompt
	require.NoError(t, db.First(&reloaded, "id = ?", parent.ID).Error)
	assert.Equal(t, 1, reloaded.RemixCount, "counter records remixes ever made")
}
