package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// caseLinkPattern finds FAS case UUIDs in the verdict, optionally
// prefixed by a "case ID" label the model likes to emit. The label and
// the UUID are replaced together by one link.
var caseLinkPattern = regexp.MustCompile(`(?i)(?:\bcase\s?ID[:\s]*)?([0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12})`)

// PostprocessVerdict turns a raw model answer into the message sent to
// the user: case IDs become links into the FAS decision registry, the
// HTML is reduced to the Telegram subset and the standing legal
// disclaimer is appended.
func PostprocessVerdict(raw string) string {
	text := linkCases(raw)
	text = SanitizeTelegramHTML(text)
	return text + verdictDisclaimer
}

func linkCases(text string) string {
	return caseLinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := caseLinkPattern.FindStringSubmatch(match)
		if groups == nil {
			return match
		}
		caseID := strings.ToLower(strings.TrimSpace(groups[1]))
		if _, err := uuid.Parse(caseID); err != nil {
			return match
		}
		return fmt.Sprintf(`<a href="https://br.fas.gov.ru/cases/%s/">[ссылка]</a>`, caseID)
	})
}

const verdictDisclaimer = `

<i>А также не забудьте:</i>

• Объекты, входящие в состав креатива (тексты, шрифты, изображения, товарные знаки и иные обозначения), не должны нарушать права третьих лиц — в том числе авторские, смежные и исключительные права, а также право гражданина на охрану его изображения. Убедитесь, что у вас имеются лицензии и все необходимые согласия на использование таких объектов <b>именно в данном креативе</b> и <b>через предполагаемые каналы его распространения</b>.

• При размещении рекламы в Интернете необходимо <b>заранее получить erid</b> у оператора рекламных данных, а также добавить на креатив читаемую пометку «реклама» и наименование рекламодателя. Для размещения креативов в периодических печатных изданиях также требуется пометка «реклама» или «на правах рекламы».

• <b>До направления</b> рассылок по e-mail или sms у вас должно быть получено согласие пользователя на их получение! В последние годы ФАС наиболее часто привлекает к ответственности именно за отсутствие такого согласия.

• То, что вы заявляете в рекламе, должно на 100% соответствовать действительности: у ФАС обширная практика по выявлению недостоверной информации в рекламе. Даже незначительные преувеличения могут стать причиной обращения недовольных клиентов в ФАС.

• Законом предусмотрены правила не только для содержания креативов, но и для способов их размещения по почти любым каналам распространения помимо того, что указано выше. Если у вас остаются сомнения, всегда лучше заручиться консультацией юриста.
`
