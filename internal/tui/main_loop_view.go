package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-trip-keeper/models"
)

func (m mainLoopModel) View() string {
	if m.errMsg != "" {
		return renderErrorBox(m.errMsg)
	}

	switch m.screen {
	case screenForm:
		return m.form.View()
	case screenConfirm:
		return m.confirm.View()
	case screenPicker:
		return m.pickerView()
	case screenDetail:
		return m.detailView()
	default:
		return m.listView()
	}
}

func (m mainLoopModel) listView() string {
	var b strings.Builder

	if m.tab == tabTrips {
		b.WriteString(titleStyle.Render("[Поездки]") + "  Автомобили\n\n")
	} else {
		b.WriteString("Поездки  " + titleStyle.Render("[Автомобили]") + "\n\n")
	}

	switch {
	case m.loading && m.listLen() == 0:
		b.WriteString("Загрузка...\n")
	case m.listLen() == 0:
		b.WriteString("Нет записей\n")
	case m.tab == tabTrips:
		for i, trip := range m.trips {
			b.WriteString(cursor(i == m.idx))
			b.WriteString(tripRow(trip))
			b.WriteString("\n")
		}
	default:
		for i, vehicle := range m.vehicles {
			b.WriteString(cursor(i == m.idx))
			b.WriteString(vehicleRow(vehicle))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar())

	hotKeys := "tab: вкладка │ n: новая │ e: изменить │ d: удалить │ s: синхр. │ r: повтор │ L: выйти из аккаунта │ q: выход"
	if m.tab == tabTrips {
		hotKeys = "enter: открыть │ " + hotKeys
	} else {
		hotKeys = "c: ссылка на фото │ " + hotKeys
	}
	return renderPage("TRIPKEEPER", b.String(), hotKeys)
}

func (m mainLoopModel) detailView() string {
	trip := m.detail.trip

	var b strings.Builder
	fmt.Fprintf(&b, "Статус:       %s\n", tripStatusText(trip.Status))
	fmt.Fprintf(&b, "Отправление:  %s\n", valueOrDash(displayTime(trip.DepartureAt)))
	fmt.Fprintf(&b, "Прибытие:     %s\n", valueOrDash(displayTime(trip.ArrivalAt)))
	fmt.Fprintf(&b, "Заметки:      %s\n", valueOrDash(trip.Notes))

	b.WriteString("\nАвтомобили:\n")
	if len(m.detail.vehicles) == 0 {
		b.WriteString("  -\n")
	}
	for i, v := range m.detail.vehicles {
		b.WriteString(cursor(i == m.detail.idx))
		b.WriteString(vehicleRow(v))
		b.WriteString("\n")
	}

	b.WriteString("\nОтрезки:\n")
	switch {
	case m.detail.loading:
		b.WriteString("  Загрузка...\n")
	case len(m.detail.segments) == 0:
		b.WriteString("  -\n")
	}
	var total float64
	for _, s := range m.detail.segments {
		b.WriteString("  ")
		b.WriteString(m.segmentRow(s))
		b.WriteString("\n")
		if s.EndKm != nil {
			total += *s.EndKm - s.StartKm
		}
	}
	if total > 0 {
		b.WriteString("  Итого: " + formatKm(total) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return renderPage("ПОЕЗДКА: "+trip.Name, b.String(),
		"esc: назад │ e: изменить │ a: добавить авто │ x: отвязать │ o: старт отрезка │ f: финиш │ C: завершить поездку")
}

func (m mainLoopModel) pickerView() string {
	var b strings.Builder
	for i, v := range m.linkable() {
		b.WriteString(cursor(i == m.pickIdx))
		b.WriteString(vehicleRow(v))
		b.WriteString("\n")
	}
	return renderPage("ДОБАВИТЬ АВТОМОБИЛЬ В: "+m.detail.trip.Name, b.String(), "esc: назад │ enter: добавить")
}

func (m mainLoopModel) statusBar() string {
	parts := []string{"Сеть: офлайн"}
	if m.online {
		parts[0] = "Сеть: онлайн"
	}
	parts = append(parts, "В очереди: "+strconv.Itoa(m.sync.Pending))
	if m.sync.FailedItems > 0 {
		parts = append(parts, errorStyle.Render("Ошибок: "+strconv.Itoa(m.sync.FailedItems)))
	}
	if m.syncing || !m.sync.Idle() {
		parts = append(parts, m.spinner.View()+" синхронизация")
	}

	line := helpStyle.Render(strings.Join(parts, " │ "))
	if m.sync.LastError != "" {
		line += "\n" + helpStyle.Render("Последняя ошибка: "+fitText(m.sync.LastError, 60))
	}
	if m.status != "" {
		line += "\n" + m.status
	}
	return line
}

func (m mainLoopModel) segmentRow(s models.OdometerSegment) string {
	name := s.VehicleID
	if v, ok := m.services.State.Vehicle(s.VehicleID); ok {
		name = v.Nickname
	}

	if s.Open() {
		return fmt.Sprintf("%s: %s → ... (в пути)", fitText(name, 20), formatKm(s.StartKm))
	}
	return fmt.Sprintf("%s: %s → %s (%s)", fitText(name, 20), formatKm(s.StartKm), formatKm(*s.EndKm), formatKm(*s.EndKm-s.StartKm))
}

func tripRow(t models.Trip) string {
	row := fmt.Sprintf("%-30s %-10s %s  авто: %d",
		fitText(t.Name, 30), tripStatusText(t.Status), valueOrDash(displayTime(t.DepartureAt)), len(t.VehicleIDs))
	if models.IsLocalID(t.ID) {
		row += "  *"
	}
	return row
}

func vehicleRow(v models.Vehicle) string {
	row := fmt.Sprintf("%-20s %-10s %s", fitText(v.Nickname, 20), valueOrDash(v.LicensePlate), strings.TrimSpace(v.Make+" "+v.Model))
	switch v.SyncStatus {
	case models.SyncStatusPending:
		row += "  *"
	case models.SyncStatusError:
		row += "  !"
	}
	return row
}

func tripStatusText(s models.TripStatus) string {
	if s == models.TripStatusCompleted {
		return "завершена"
	}
	return "в пути"
}

func cursor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}
