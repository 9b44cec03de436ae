package dialog

// Reply is what the engine wants said, free of transport types. The shell
// renders it as a new message or, when Edit is set, as an edit of the
// previously rendered message.
type Reply struct {
	Text     string
	Keyboard [][]Button
	Edit     bool
}

type Button struct {
	Label string
	Data  string
}

func text(s string) Reply { return Reply{Text: s} }
func edit(s string) Reply { return Reply{Text: s, Edit: true} }

// contactsPerRow is a rendering convention, not a rule: keyboards read best
// with at most three buttons per line.
const contactsPerRow = 3

func menuReply() Reply {
	return Reply{
		Text: "Выбери действие:",
		Keyboard: [][]Button{
			{
				{Label: "Долги", Data: tokenNewTransfer},
				{Label: "Сводка", Data: tokenBalances},
			},
			{
				{Label: "Добавить контакт", Data: tokenAddContact},
				{Label: "Редактировать контакт", Data: tokenEditContact},
				{Label: "Удалить контакт", Data: tokenDeleteContact},
			},
		},
	}
}

func contactsKeyboard(names []string) [][]Button {
	var rows [][]Button
	var row []Button
	for _, name := range names {
		row = append(row, Button{Label: name, Data: SelectContactToken(name)})
		if len(row) == contactsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func directionReply() Reply {
	return Reply{
		Text: "Выбери:",
		Edit: true,
		Keyboard: [][]Button{
			{
				{Label: "Дал в долг", Data: tokenGave},
				{Label: "Взял в долг", Data: tokenTook},
			},
			{
				{Label: "История", Data: tokenHistory},
				{Label: "Рассчитались", Data: tokenSettled},
			},
		},
	}
}

func deleteConfirmReply(name string) Reply {
	return Reply{
		Text: "Удалить контакт «" + name + "»? Долги по нему сохранятся.",
		Edit: true,
		Keyboard: [][]Button{
			{
				{Label: "Да", Data: tokenDeleteYes},
				{Label: "Нет", Data: tokenDeleteNo},
			},
		},
	}
}
