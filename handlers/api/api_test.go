package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"kutla.link/configs/configsdatabase"
	"kutla.link/configs/configslog"
	"kutla.link/database"
	"kutla.link/routes"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var initLoggerOnce sync.Once

// setupTestApp in-memory sqlite üzerinde tüm rotalarıyla bir uygulama kurar.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	initLoggerOnce.Do(configslog.InitLogger)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		if dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	if err := database.RunMigrationsInOrder(db); err != nil {
		t.Fatalf("test şeması kurulamadı: %v", err)
	}

	configsdatabase.SetDB(db)

	app := fiber.New()
	routes.SetupRoutes(app)
	return app
}

// doJSON JSON gövdeli bir isteği uygulamaya gönderir.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("istek gövdesi kodlanamadı: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s isteği başarısız: %v", method, target, err)
	}
	return resp
}

// decodeBody cevabın JSON gövdesini verilen hedefe çözer.
func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("cevap gövdesi çözülemedi: %v", err)
	}
}

type cardResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	RecipientName    string `json:"recipientName"`
	Status           string `json:"status"`
	ShareKey         string `json:"shareKey"`
	AnniversaryYears int    `json:"anniversaryYears"`
	Department       string `json:"department"`
	OwnerToken       string `json:"ownerToken"`
}

type participationResponse struct {
	ID               uint   `json:"id"`
	CardID           uint   `json:"cardId"`
	ParticipantName  string `json:"participantName"`
	ParticipantEmail string `json:"participantEmail"`
	Status           string `json:"status"`
}

type wishResponse struct {
	ID              uint                   `json:"id"`
	Content         string                 `json:"content"`
	CardID          uint                   `json:"cardId"`
	ParticipationID uint                   `json:"participationId"`
	Participation   *participationResponse `json:"participation"`
}

// createCard testler için API üzerinden kart oluşturur.
func createCard(t *testing.T, app *fiber.App, title string) cardResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/cards", fiber.Map{
		"title":            title,
		"recipientName":    "Ayşe Yılmaz",
		"celebrationDate":  "2025-01-01",
		"anniversaryYears": 5,
		"department":       "Mühendislik",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("kart oluşturma 201 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var card cardResponse
	decodeBody(t, resp, &card)
	return card
}

func TestApiCreateCard(t *testing.T) {
	app := setupTestApp(t)

	card := createCard(t, app, "Ayşe'nin 5. Yılı")
	if card.ID == 0 {
		t.Error("kart ID atanmalıydı")
	}
	if card.Status != "collecting" {
		t.Errorf("yeni kartın durumu collecting olmalıydı, alınan: %s", card.Status)
	}
	if len(card.ShareKey) != 20 {
		t.Errorf("paylaşım anahtarı 20 karakter olmalıydı, alınan: %q", card.ShareKey)
	}
	if card.OwnerToken == "" {
		t.Error("oluşturma cevabı owner token içermeliydi")
	}

	// Token yalnızca oluşturma cevabında döner, okuma cevabında yer almaz.
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/cards/%d", card.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kart okunamadı, durum: %d", resp.StatusCode)
	}
	var raw map[string]interface{}
	decodeBody(t, resp, &raw)
	if _, exists := raw["ownerToken"]; exists {
		t.Error("okuma cevabında ownerToken bulunmamalıydı")
	}
	if _, exists := raw["ownerTokenHash"]; exists {
		t.Error("okuma cevabında ownerTokenHash bulunmamalıydı")
	}
}

func TestApiCreateCard_Validation(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/cards", fiber.Map{
		"celebrationDate": "2025-01-01",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("başlıksız kart için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/cards", fiber.Map{
		"title": "Tarihsiz kart",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("tarihsiz kart için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}
}

func TestApiGetCard_NotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/cards/9999", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("olmayan kart için 404 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/cards/9999/wishes", fiber.Map{
		"participantName": "Ali",
		"content":         "Nice yıllara!",
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("olmayan karta katkı için 404 bekleniyordu, alınan: %d", resp.StatusCode)
	}
}

func TestApiListCards(t *testing.T) {
	app := setupTestApp(t)
	createCard(t, app, "Birinci kart")
	createCard(t, app, "İkinci kart")

	// Varsayılan: düz liste.
	resp := doJSON(t, app, http.MethodGet, "/api/cards", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kart listesi 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var cards []cardResponse
	decodeBody(t, resp, &cards)
	if len(cards) != 2 {
		t.Fatalf("2 kart bekleniyordu, alınan: %d", len(cards))
	}
	if cards[0].Title != "İkinci kart" {
		t.Errorf("en yeni kart önce gelmeliydi, alınan: %q", cards[0].Title)
	}

	// Sayfalama parametresi verilirse zarflı cevap döner.
	resp = doJSON(t, app, http.MethodGet, "/api/cards?page=1&per_page=1", nil, nil)
	var paginated struct {
		Data []cardResponse `json:"data"`
		Meta struct {
			TotalItems int64 `json:"totalItems"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	decodeBody(t, resp, &paginated)
	if len(paginated.Data) != 1 {
		t.Errorf("sayfada 1 kart bekleniyordu, alınan: %d", len(paginated.Data))
	}
	if paginated.Meta.TotalItems != 2 || paginated.Meta.TotalPages != 2 {
		t.Errorf("meta hatalı: %+v", paginated.Meta)
	}
}

func TestApiUpdateCard_OwnerToken(t *testing.T) {
	app := setupTestApp(t)
	card := createCard(t, app, "Token korumalı kart")
	target := fmt.Sprintf("/api/cards/%d", card.ID)

	// Token olmadan guncelleme reddedilir.
	resp := doJSON(t, app, http.MethodPatch, target, fiber.Map{"title": "Ele geçirildi"}, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("tokensiz güncelleme için 403 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// Yanlış token da reddedilir.
	resp = doJSON(t, app, http.MethodPatch, target, fiber.Map{"title": "Ele geçirildi"}, map[string]string{
		"X-Owner-Token": "yanlis-token",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("yanlış token için 403 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// Doğru token ile kısmi güncelleme uygulanır.
	resp = doJSON(t, app, http.MethodPatch, target, fiber.Map{"title": "Yeni başlık"}, map[string]string{
		"X-Owner-Token": card.OwnerToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("güncelleme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var updated cardResponse
	decodeBody(t, resp, &updated)
	if updated.Title != "Yeni başlık" {
		t.Errorf("başlık güncellenmemiş: %q", updated.Title)
	}
	if updated.RecipientName != card.RecipientName {
		t.Error("gönderilmeyen alanlar değişmemeliydi")
	}
}

func TestApiCardLifecycle(t *testing.T) {
	app := setupTestApp(t)
	card := createCard(t, app, "Yaşam döngüsü kartı")
	target := fmt.Sprintf("/api/cards/%d", card.ID)
	auth := map[string]string{"X-Owner-Token": card.OwnerToken}

	// Toplama açıkken katkı kabul edilir.
	resp := doJSON(t, app, http.MethodPost, target+"/wishes", fiber.Map{
		"participantName": "Ali",
		"content":         "Nice yıllara!",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("katkı 201 dönmeliydi, alınan: %d", resp.StatusCode)
	}

	// Kart tamamlanır; yalnızca durum değişir.
	resp = doJSON(t, app, http.MethodPatch, target, fiber.Map{"status": "completed"}, auth)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("durum güncelleme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var completed cardResponse
	decodeBody(t, resp, &completed)
	if completed.Status != "completed" {
		t.Fatalf("durum completed olmalıydı, alınan: %s", completed.Status)
	}
	if completed.Title != card.Title {
		t.Error("durum güncellemesi diğer alanları değiştirmemeliydi")
	}

	// Tamamlanan kart yeni katkı kabul etmez.
	resp = doJSON(t, app, http.MethodPost, target+"/wishes", fiber.Map{
		"participantName": "Geciken",
		"content":         "Geç kaldım!",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("tamamlanan karta katkı için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// Tamamlanan kart geri açılamaz.
	resp = doJSON(t, app, http.MethodPatch, target, fiber.Map{"status": "collecting"}, auth)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("geri açma denemesi için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// Kart silinir; bağlı tüm kayıtlar da gider.
	resp = doJSON(t, app, http.MethodDelete, target+"/delete", nil, auth)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("silme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, target, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("silinen kart için 404 bekleniyordu, alınan: %d", resp.StatusCode)
	}
}

func TestApiDeleteCard_OwnerToken(t *testing.T) {
	app := setupTestApp(t)
	card := createCard(t, app, "Silmeye korumalı kart")
	target := fmt.Sprintf("/api/cards/%d/delete", card.ID)

	resp := doJSON(t, app, http.MethodDelete, target, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("tokensiz silme için 403 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodDelete, target, nil, map[string]string{
		"X-Owner-Token": card.OwnerToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("doğru token ile silme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
}

func TestApiContributeFlow(t *testing.T) {
	app := setupTestApp(t)
	card := createCard(t, app, "Katkı akışı kartı")
	base := fmt.Sprintf("/api/cards/%d", card.ID)
	auth := map[string]string{"X-Owner-Token": card.OwnerToken}

	// Katkı: katılım + dilek birlikte oluşur.
	resp := doJSON(t, app, http.MethodPost, base+"/wishes", fiber.Map{
		"participantName":  "Ali",
		"participantEmail": "ali@example.com",
		"content":          "Nice mutlu yıllara!",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("katkı 201 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var wish wishResponse
	decodeBody(t, resp, &wish)
	if wish.CardID != card.ID {
		t.Errorf("dilek kart %d'ye bağlanmalıydı, alınan: %d", card.ID, wish.CardID)
	}
	if wish.Participation == nil || wish.Participation.Status != "contributed" {
		t.Fatalf("katılım contributed durumunda dönmeliydi: %+v", wish.Participation)
	}

	// Dilek listesi katılım bilgisiyle döner.
	resp = doJSON(t, app, http.MethodGet, base+"/wishes", nil, nil)
	var wishes []wishResponse
	decodeBody(t, resp, &wishes)
	if len(wishes) != 1 || wishes[0].Participation == nil {
		t.Fatalf("1 dilek katılımıyla birlikte bekleniyordu: %+v", wishes)
	}

	// Katılım listesi de katkıyı gösterir.
	resp = doJSON(t, app, http.MethodGet, base+"/participations", nil, nil)
	var participations []participationResponse
	decodeBody(t, resp, &participations)
	if len(participations) != 1 || participations[0].Status != "contributed" {
		t.Fatalf("1 contributed katılım bekleniyordu: %+v", participations)
	}

	// Dilek içeriği owner token ile düzenlenebilir.
	wishTarget := fmt.Sprintf("%s/wishes/%d", base, wish.ID)
	resp = doJSON(t, app, http.MethodPatch, wishTarget, fiber.Map{"content": "Düzeltilmiş dilek"}, auth)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dilek güncelleme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}

	// Dilek silinince katılım invited durumuna döner.
	resp = doJSON(t, app, http.MethodDelete, wishTarget, nil, auth)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dilek silme 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, base+"/participations", nil, nil)
	decodeBody(t, resp, &participations)
	if len(participations) != 1 || participations[0].Status != "invited" {
		t.Fatalf("katılım invited durumuna dönmeliydi: %+v", participations)
	}

	// Aynı dilek ikinci kez silinemez.
	resp = doJSON(t, app, http.MethodDelete, wishTarget, nil, auth)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("ikinci silme için 404 bekleniyordu, alınan: %d", resp.StatusCode)
	}
}

func TestApiWish_CrossCardForbidden(t *testing.T) {
	app := setupTestApp(t)
	firstCard := createCard(t, app, "Asıl kart")
	otherCard := createCard(t, app, "Başka kart")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/cards/%d/wishes", firstCard.ID), fiber.Map{
		"participantName": "Ali",
		"content":         "Yerinde duran dilek",
	}, nil)
	var wish wishResponse
	decodeBody(t, resp, &wish)

	// Dilek başka bir kart üzerinden silinemez, o kartın sahibi olsa bile.
	target := fmt.Sprintf("/api/cards/%d/wishes/%d", otherCard.ID, wish.ID)
	resp = doJSON(t, app, http.MethodDelete, target, nil, map[string]string{
		"X-Owner-Token": otherCard.OwnerToken,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("kartlar arası silme için 403 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// Dilek yerli yerinde durmalı.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/cards/%d/wishes", firstCard.ID), nil, nil)
	var wishes []wishResponse
	decodeBody(t, resp, &wishes)
	if len(wishes) != 1 {
		t.Errorf("dilek silinmemeliydi, kalan: %d", len(wishes))
	}
}

func TestApiParticipations(t *testing.T) {
	app := setupTestApp(t)
	card := createCard(t, app, "Davet kartı")
	base := fmt.Sprintf("/api/cards/%d/participations", card.ID)

	resp := doJSON(t, app, http.MethodPost, base, fiber.Map{
		"participantName":  "Fatma",
		"participantEmail": "fatma@example.com",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("katılım 201 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var participation participationResponse
	decodeBody(t, resp, &participation)
	if participation.Status != "invited" {
		t.Errorf("varsayılan durum invited olmalıydı, alınan: %s", participation.Status)
	}

	// İsimsiz katılım reddedilir.
	resp = doJSON(t, app, http.MethodPost, base, fiber.Map{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("isimsiz katılım için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}

	// E-posta ile katılım sorgusu.
	resp = doJSON(t, app, http.MethodGet, "/api/participations?email=fatma@example.com", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("e-posta sorgusu 200 dönmeliydi, alınan: %d", resp.StatusCode)
	}
	var byEmail []participationResponse
	decodeBody(t, resp, &byEmail)
	if len(byEmail) != 1 || byEmail[0].ParticipantEmail != "fatma@example.com" {
		t.Errorf("1 katılım bekleniyordu: %+v", byEmail)
	}

	// E-posta parametresi zorunludur.
	resp = doJSON(t, app, http.MethodGet, "/api/participations", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("e-postasız sorgu için 400 bekleniyordu, alınan: %d", resp.StatusCode)
	}
}

func TestApiUnknownRoute(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/olmayan-rota", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("bilinmeyen rota için 404 bekleniyordu, alınan: %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] == "" {
		t.Error("404 cevabı JSON hata mesajı içermeliydi")
	}
}
