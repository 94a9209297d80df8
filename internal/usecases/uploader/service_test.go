package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/repository"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/telegram"
	"github.com/admin/tg-bots/image2url-bot/internal/usecases/uploader/texts"
)

const testAdminChatID int64 = 1000

// --- fakes ---

type fakeUserRepo struct {
	users       []*domain.BotUser
	getAllCalls int
	failGetAll  bool
}

var _ repository.IUserRepo = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Register(_ context.Context, user *domain.BotUser) (bool, error) {
	for _, existing := range f.users {
		if existing.ChatID == user.ChatID {
			return false, nil
		}
	}
	f.users = append(f.users, user)
	return true, nil
}

func (f *fakeUserRepo) ExistsByChatID(_ context.Context, chatID int64) (bool, error) {
	for _, u := range f.users {
		if u.ChatID == chatID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetByChatID(_ context.Context, chatID int64) (*domain.BotUser, error) {
	for _, u := range f.users {
		if u.ChatID == chatID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*domain.BotUser, error) {
	f.getAllCalls++
	if f.failGetAll {
		return nil, errors.New("db is down")
	}
	return f.users, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeTelegramClient struct {
	sent        []sentMessage
	keyboards   []map[string]interface{}
	chatActions []string
	failSendTo  map[int64]bool

	fileInfo    *domain.FileInfo
	getFileErr  error
	fileData    []byte
	downloadErr error
}

var _ telegram.IClient = (*fakeTelegramClient)(nil)

func (f *fakeTelegramClient) SendMessage(_ context.Context, chatID int64, text string) error {
	if f.failSendTo[chatID] {
		return errors.New("forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegramClient) SendMessageWithKeyboard(_ context.Context, chatID int64, text string, keyboard map[string]interface{}) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	f.keyboards = append(f.keyboards, keyboard)
	return nil
}

func (f *fakeTelegramClient) SendChatAction(_ context.Context, _ int64, action string) error {
	f.chatActions = append(f.chatActions, action)
	return nil
}

func (f *fakeTelegramClient) GetFile(_ context.Context, fileID string) (*domain.FileInfo, error) {
	if f.getFileErr != nil {
		return nil, f.getFileErr
	}
	if f.fileInfo != nil {
		return f.fileInfo, nil
	}
	return &domain.FileInfo{FileID: fileID, FilePath: "photos/" + fileID + ".jpg"}, nil
}

func (f *fakeTelegramClient) DownloadFile(_ context.Context, _ string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.fileData != nil {
		return f.fileData, nil
	}
	return []byte("fake image bytes"), nil
}

type fakeUploader struct {
	url      string
	err      error
	calls    int
	gotBytes []byte
	gotName  string
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, _ int64, filename string) (string, error) {
	f.calls++
	f.gotName = filename
	data, _ := io.ReadAll(file)
	f.gotBytes = data
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newTestService(repo *fakeUserRepo, tg *fakeTelegramClient, up *fakeUploader) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, tg, up, nil, nil, nil, testAdminChatID, log)
}

func privateMessage(chatID int64, firstName string) *domain.Message {
	return &domain.Message{
		From: &domain.TelegramUser{ID: chatID, FirstName: firstName},
		Chat: &domain.Chat{ID: chatID, Type: "private"},
		Date: time.Now().Unix(),
	}
}

// --- tests ---

func TestHandleStartRegistersUserOnce(t *testing.T) {
	repo := &fakeUserRepo{}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	msg := privateMessage(42, "Alice")
	for i := 0; i < 3; i++ {
		if err := svc.HandleStart(context.Background(), msg); err != nil {
			t.Fatalf("HandleStart attempt %d: %v", i+1, err)
		}
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly 1 registered user, got %d", len(repo.users))
	}
	if repo.users[0].FirstName == nil || *repo.users[0].FirstName != "Alice" {
		t.Fatalf("first_name not stored: %#v", repo.users[0].FirstName)
	}
	if len(tg.sent) != 3 {
		t.Fatalf("welcome must be sent on every /start, got %d sends", len(tg.sent))
	}
	if len(tg.keyboards) != 3 {
		t.Fatalf("welcome keyboard missing: %d", len(tg.keyboards))
	}
	if _, ok := tg.keyboards[0]["inline_keyboard"]; !ok {
		t.Fatalf("keyboard has no inline_keyboard field: %#v", tg.keyboards[0])
	}
}

func TestHandleUsersRejectsNonAdmin(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.BotUser{{ID: uuid.New(), ChatID: 42}}}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	if err := svc.HandleUsers(context.Background(), privateMessage(42, "Mallory")); err != nil {
		t.Fatalf("HandleUsers: %v", err)
	}

	if repo.getAllCalls != 0 {
		t.Fatalf("directory must not be scanned for non-admin, got %d calls", repo.getAllCalls)
	}
	if len(tg.sent) != 1 || tg.sent[0].text != texts.NotAuthorized {
		t.Fatalf("expected not-authorized reply, got %#v", tg.sent)
	}
	if tg.sent[0].chatID != 42 {
		t.Fatalf("refusal must go to the requester, got chat %d", tg.sent[0].chatID)
	}
}

func TestHandleUsersEmptyDirectory(t *testing.T) {
	tg := &fakeTelegramClient{}
	svc := newTestService(&fakeUserRepo{}, tg, &fakeUploader{})

	if err := svc.HandleUsers(context.Background(), privateMessage(testAdminChatID, "Admin")); err != nil {
		t.Fatalf("HandleUsers: %v", err)
	}

	if len(tg.sent) != 1 || tg.sent[0].text != texts.UsersEmpty {
		t.Fatalf("expected empty-directory notice, got %#v", tg.sent)
	}
}

func TestHandleUsersListsDisplayNames(t *testing.T) {
	name := "Bob"
	repo := &fakeUserRepo{users: []*domain.BotUser{
		{ID: uuid.New(), ChatID: 1, FirstName: &name},
		{ID: uuid.New(), ChatID: 2}, // старая запись без имени
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	if err := svc.HandleUsers(context.Background(), privateMessage(testAdminChatID, "Admin")); err != nil {
		t.Fatalf("HandleUsers: %v", err)
	}

	reply := tg.sent[len(tg.sent)-1].text
	if !strings.Contains(reply, "Bob (1)") {
		t.Fatalf("named user missing from list: %q", reply)
	}
	if !strings.Contains(reply, "2 (2)") {
		t.Fatalf("nameless user must fall back to chat_id: %q", reply)
	}
}

func TestBroadcastEmptyTextSendsUsage(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.BotUser{{ID: uuid.New(), ChatID: 1}}}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	if err := svc.HandleBroadcast(context.Background(), privateMessage(testAdminChatID, "Admin"), "   "); err != nil {
		t.Fatalf("HandleBroadcast: %v", err)
	}

	if len(tg.sent) != 1 || tg.sent[0].text != texts.BroadcastUsage {
		t.Fatalf("expected usage warning, got %#v", tg.sent)
	}
	if tg.sent[0].chatID != testAdminChatID {
		t.Fatalf("usage warning must go to admin, got chat %d", tg.sent[0].chatID)
	}
}

func TestBroadcastIsolatesPerRecipientFailures(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.BotUser{
		{ID: uuid.New(), ChatID: 1},
		{ID: uuid.New(), ChatID: 2},
		{ID: uuid.New(), ChatID: 3},
	}}
	tg := &fakeTelegramClient{failSendTo: map[int64]bool{2: true}}
	svc := newTestService(repo, tg, &fakeUploader{})

	report, err := svc.Broadcast(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	if report.Sent != 2 || report.Failed != 1 {
		t.Fatalf("expected 2 sent / 1 failed, got %+v", report)
	}
	for _, m := range tg.sent {
		if !strings.HasPrefix(m.text, texts.BroadcastPrefix) {
			t.Fatalf("broadcast message lacks prefix: %q", m.text)
		}
	}
}

func TestBroadcastCommandReportsTally(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.BotUser{
		{ID: uuid.New(), ChatID: 1},
		{ID: uuid.New(), ChatID: 2},
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	if err := svc.HandleBroadcast(context.Background(), privateMessage(testAdminChatID, "Admin"), "ship it"); err != nil {
		t.Fatalf("HandleBroadcast: %v", err)
	}

	final := tg.sent[len(tg.sent)-1]
	if final.chatID != testAdminChatID {
		t.Fatalf("tally must go to admin, got chat %d", final.chatID)
	}
	if !strings.Contains(final.text, "2") {
		t.Fatalf("tally missing sent count: %q", final.text)
	}
}

func TestBroadcastRejectsNonAdmin(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.BotUser{{ID: uuid.New(), ChatID: 1}}}
	tg := &fakeTelegramClient{}
	svc := newTestService(repo, tg, &fakeUploader{})

	if err := svc.HandleBroadcast(context.Background(), privateMessage(55, "Mallory"), "spam"); err != nil {
		t.Fatalf("HandleBroadcast: %v", err)
	}

	if repo.getAllCalls != 0 {
		t.Fatalf("non-admin broadcast must not touch the directory")
	}
	if len(tg.sent) != 1 || tg.sent[0].text != texts.NotAuthorized {
		t.Fatalf("expected not-authorized reply, got %#v", tg.sent)
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	tg := &fakeTelegramClient{}
	svc := newTestService(&fakeUserRepo{}, tg, &fakeUploader{})

	if err := svc.HandleCommand(context.Background(), privateMessage(42, "Alice"), "frobnicate", ""); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	if len(tg.sent) != 1 || !strings.Contains(tg.sent[0].text, "frobnicate") {
		t.Fatalf("expected unknown-command notice, got %#v", tg.sent)
	}
}

func TestHandlePhotoRelaysHighestResolution(t *testing.T) {
	tg := &fakeTelegramClient{fileData: []byte("jpeg bytes")}
	up := &fakeUploader{url: "https://i.ibb.co/abc/photo.jpg"}
	svc := newTestService(&fakeUserRepo{}, tg, up)

	msg := privateMessage(42, "Alice")
	msg.Photo = []domain.PhotoSize{
		{FileID: "small", Width: 90, Height: 90},
		{FileID: "medium", Width: 320, Height: 320},
		{FileID: "large", Width: 1280, Height: 1280},
	}

	if err := svc.HandlePhoto(context.Background(), msg); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	if up.calls != 1 {
		t.Fatalf("expected exactly one upload, got %d", up.calls)
	}
	if up.gotName != "large.jpg" {
		t.Fatalf("must relay the highest-resolution variant, uploaded %q", up.gotName)
	}
	if string(up.gotBytes) != "jpeg bytes" {
		t.Fatalf("uploaded bytes differ from downloaded: %q", up.gotBytes)
	}
	if len(tg.chatActions) != 1 || tg.chatActions[0] != "upload_photo" {
		t.Fatalf("expected upload_photo chat action, got %#v", tg.chatActions)
	}

	reply := tg.sent[len(tg.sent)-1].text
	if !strings.Contains(reply, up.url) {
		t.Fatalf("reply must contain the public url: %q", reply)
	}
}

func TestHandlePhotoSemanticUploadFailure(t *testing.T) {
	tg := &fakeTelegramClient{}
	up := &fakeUploader{err: fmt.Errorf("%w: no data.url in response", domain.ErrUploadSemantic)}
	svc := newTestService(&fakeUserRepo{}, tg, up)

	msg := privateMessage(42, "Alice")
	msg.Photo = []domain.PhotoSize{{FileID: "p1"}}

	if err := svc.HandlePhoto(context.Background(), msg); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	reply := tg.sent[len(tg.sent)-1].text
	if reply != texts.UploadFailedNoURL {
		t.Fatalf("expected missing-url reply, got %q", reply)
	}
}

func TestHandlePhotoTransportUploadFailure(t *testing.T) {
	tg := &fakeTelegramClient{}
	up := &fakeUploader{err: fmt.Errorf("%w: status 500", domain.ErrUploadTransport)}
	svc := newTestService(&fakeUserRepo{}, tg, up)

	msg := privateMessage(42, "Alice")
	msg.Photo = []domain.PhotoSize{{FileID: "p1"}}

	if err := svc.HandlePhoto(context.Background(), msg); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	reply := tg.sent[len(tg.sent)-1].text
	if reply != texts.UploadFailedHostError {
		t.Fatalf("expected host-error reply, got %q", reply)
	}
}

func TestHandlePhotoDownloadFailureSkipsUpload(t *testing.T) {
	tg := &fakeTelegramClient{getFileErr: fmt.Errorf("%w: status 404", domain.ErrDownloadFailed)}
	up := &fakeUploader{url: "https://example.com/never"}
	svc := newTestService(&fakeUserRepo{}, tg, up)

	msg := privateMessage(42, "Alice")
	msg.Photo = []domain.PhotoSize{{FileID: "p1"}}

	if err := svc.HandlePhoto(context.Background(), msg); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	if up.calls != 0 {
		t.Fatalf("upload must not run when download failed")
	}
	reply := tg.sent[len(tg.sent)-1].text
	if reply != texts.DownloadFailed {
		t.Fatalf("expected download-failed reply, got %q", reply)
	}
}

func TestHandlePhotoInternalFailureIncludesError(t *testing.T) {
	tg := &fakeTelegramClient{downloadErr: errors.New("disk exploded")}
	svc := newTestService(&fakeUserRepo{}, tg, &fakeUploader{})

	msg := privateMessage(42, "Alice")
	msg.Photo = []domain.PhotoSize{{FileID: "p1"}}

	if err := svc.HandlePhoto(context.Background(), msg); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	reply := tg.sent[len(tg.sent)-1].text
	if !strings.Contains(reply, "disk exploded") {
		t.Fatalf("internal error reply must include the cause: %q", reply)
	}
}

func TestRelayLeavesNoTempFiles(t *testing.T) {
	countTempFiles := func() int {
		matches, err := filepath.Glob(filepath.Join(os.TempDir(), "relay-*"))
		if err != nil {
			t.Fatalf("glob: %v", err)
		}
		return len(matches)
	}

	before := countTempFiles()

	// Успех и отказ аплоада должны одинаково убирать за собой
	for _, uploadErr := range []error{nil, fmt.Errorf("%w: status 500", domain.ErrUploadTransport)} {
		tg := &fakeTelegramClient{}
		up := &fakeUploader{url: "https://example.com/ok.jpg", err: uploadErr}
		svc := newTestService(&fakeUserRepo{}, tg, up)

		msg := privateMessage(42, "Alice")
		msg.Photo = []domain.PhotoSize{{FileID: "p1"}}

		if err := svc.HandlePhoto(context.Background(), msg); err != nil {
			t.Fatalf("HandlePhoto: %v", err)
		}
	}

	if after := countTempFiles(); after != before {
		t.Fatalf("temp files leaked: %d before, %d after", before, after)
	}
}

func TestClassifyRelayError(t *testing.T) {
	cases := []struct {
		err  error
		want domain.RelayFailure
	}{
		{fmt.Errorf("%w: x", domain.ErrDownloadFailed), domain.RelayFailureDownload},
		{fmt.Errorf("%w: x", domain.ErrUploadTransport), domain.RelayFailureUploadTransport},
		{fmt.Errorf("%w: x", domain.ErrUploadSemantic), domain.RelayFailureUploadSemantic},
		{errors.New("something else"), domain.RelayFailureInternal},
	}

	for _, tc := range cases {
		if got := classifyRelayError(tc.err); got != tc.want {
			t.Fatalf("classifyRelayError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
