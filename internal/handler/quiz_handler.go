package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	"github.com/yourusername/quizpack-api/internal/handler/dto"
	"github.com/yourusername/quizpack-api/internal/service"
)

// QuizHandler обрабатывает запросы каталога паков и админские операции
type QuizHandler struct {
	quizService   *service.QuizService
	exportService *service.ExportService
}

// NewQuizHandler создает новый обработчик паков
func NewQuizHandler(quizService *service.QuizService, exportService *service.ExportService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		exportService: exportService,
	}
}

// GetCatalog возвращает список всех паков без вопросов
func (h *QuizHandler) GetCatalog(c *gin.Context) {
	quizzes, err := h.quizService.GetCatalog()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]*dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, dto.NewQuizResponse(&quizzes[i], false))
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuiz возвращает пак вместе с вопросами
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	quiz, err := h.quizService.GetWithQuestions(quizID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// CreateQuiz создает пак с вопросами (только для администраторов)
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, questions := req.ToEntities()
	created, err := h.quizService.CreateQuiz(quiz, questions)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuizResponse(created, true))
}

// UpdateQuiz обновляет метаданные пака (только для администраторов)
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := service.QuizUpdate{
		Name:                 req.Name,
		LeftLabel:            req.LeftLabel,
		RightLabel:           req.RightLabel,
		SubtitleSecondPerson: req.SubtitleSecondPerson,
		SubtitleThirdPerson:  req.SubtitleThirdPerson,
	}
	if req.ResultLabels != nil {
		labels := make(entity.ResultLabelArray, 0, len(*req.ResultLabels))
		for _, l := range *req.ResultLabels {
			labels = append(labels, entity.ResultLabel{Label: l.Label, Emoji: l.Emoji})
		}
		upd.ResultLabels = &labels
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, false))
}

// DeleteQuiz удаляет пак (только для администраторов)
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExportCompletions выгружает отчёт о прохождении паков (только для администраторов).
// Формат задаётся query-параметром format: csv (по умолчанию) или xlsx.
func (h *QuizHandler) ExportCompletions(c *gin.Context) {
	summary, pairs, err := h.exportService.CompletionReport()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("pack_completions_%s", time.Now().Format("2006-01-02"))

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, summary, pairs, filename)
	default:
		h.exportCSV(c, summary, filename)
	}
}

// exportCSV выгружает сводку по пакам в CSV
func (h *QuizHandler) exportCSV(c *gin.Context, summary []service.QuizCompletionRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"ID пака", "Название", "Вопросов", "Прошли о себе", "Прошли о друге", "Разблокировано пар"})
	for _, row := range summary {
		writer.Write([]string{
			strconv.FormatUint(uint64(row.QuizID), 10),
			sanitizeForExcel(row.QuizName),
			strconv.Itoa(row.QuestionCount),
			strconv.Itoa(row.SelfCompletions),
			strconv.Itoa(row.FriendCompletions),
			strconv.Itoa(row.UnlockedPairs),
		})
	}
}

// exportXLSX выгружает сводку и детализацию по парам в Excel
func (h *QuizHandler) exportXLSX(c *gin.Context, summary []service.QuizCompletionRow, pairs []service.PairCompletionRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Паки"
	f.SetSheetName("Sheet1", summarySheet)

	sw, err := f.NewStreamWriter(summarySheet)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"ID пака", "Название", "Вопросов", "Прошли о себе", "Прошли о друге", "Разблокировано пар"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}
	for i, row := range summary {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.QuizID, sanitizeForExcel(row.QuizName), row.QuestionCount,
			row.SelfCompletions, row.FriendCompletions, row.UnlockedPairs,
		}
		if err := sw.SetRow(cell, values); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
	}

	// Второй лист: кто о ком прошёл и разблокированы ли результаты
	pairsSheet := "Пары"
	if _, err := f.NewSheet(pairsSheet); err != nil {
		log.Printf("[QuizHandler] Ошибка создания листа %q: %v", pairsSheet, err)
	} else {
		psw, err := f.NewStreamWriter(pairsSheet)
		if err != nil {
			log.Printf("[QuizHandler] Ошибка создания StreamWriter для пар: %v", err)
		} else {
			psw.SetRow("A1", []interface{}{"Пак", "Субъект", "Отвечавший", "Разблокировано"})
			for i, p := range pairs {
				unlocked := "Нет"
				if p.Unlocked {
					unlocked = "Да"
				}
				psw.SetRow(fmt.Sprintf("A%d", i+2), []interface{}{
					sanitizeForExcel(p.QuizName),
					sanitizeForExcel(p.SelfUsername),
					sanitizeForExcel(p.FriendUsername),
					unlocked,
				})
			}
			if err := psw.Flush(); err != nil {
				log.Printf("[QuizHandler] Ошибка при Flush листа пар: %v", err)
			}
		}
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
