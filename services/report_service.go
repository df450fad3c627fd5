package services

import (
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService формирует файлы отчетов по результатам классификации
// и каскадного удаления
type ReportService struct{}

// NewReportService создает новый экземпляр ReportService
func NewReportService() *ReportService {
	return &ReportService{}
}

var alertReportHeaders = []string{
	"Номер работы", "Проект", "Статус", "Исполнитель",
	"Плановое начало", "Плановое окончание", "Корзина",
}

// ExportAlertsExcel выгружает обе корзины классификации в Excel файл
func (rs *ReportService) ExportAlertsExcel(buckets *AlertBuckets, filePath string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Ошибка закрытия Excel файла: %v", err)
		}
	}()

	sheetName := "Работы"
	f.SetSheetName("Sheet1", sheetName)

	// Записываем заголовки
	for i, header := range alertReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Записываем данные: сперва просроченные, затем истекающие
	rowIdx := 2
	writeOrder := func(order AlertOrder, bucket string) {
		values := []interface{}{
			order.OrderNumber,
			order.ProjectID,
			order.Status,
			order.AssignedPersonnel,
			order.PlannedStart.Format("02.01.2006"),
			order.PlannedEnd.Format("02.01.2006"),
			bucket,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			f.SetCellValue(sheetName, cell, value)
		}
		rowIdx++
	}

	for _, order := range buckets.Overdue {
		writeOrder(order, "просрочено")
	}
	for _, order := range buckets.Expiring {
		writeOrder(order, "истекает")
	}

	// Добавляем автофильтр
	endCell, _ := excelize.CoordinatesToCellName(len(alertReportHeaders), rowIdx-1)
	f.AutoFilter(sheetName, "A1:"+endCell, []excelize.AutoFilterOptions{})

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("ошибка сохранения Excel файла: %w", err)
	}
	return nil
}

// ExportProjectDeletionPDF формирует PDF со сводкой каскадного удаления
// проекта: количество удаленных строк по каждой таблице
func (rs *ReportService) ExportProjectDeletionPDF(projectID string, deleted map[string]int64, filePath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.Cell(120, 10, "Project deletion summary: "+projectID)
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 10)
	for _, table := range dependentTables {
		pdf.Cell(80, 8, table.Name)
		pdf.Cell(30, 8, fmt.Sprintf("%d", deleted[table.Name]))
		pdf.Ln(8)
	}

	return pdf.OutputFileAndClose(filePath)
}
