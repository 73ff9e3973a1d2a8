package bot

// User-facing copy, verbatim from the product. The bot speaks Russian;
// formatting is Telegram HTML unless a constant is sent plain.

const startText = `Привет!

Этот бот может проверить ваш рекламный креатив на соответствие ФЗ «О рекламе» с учетом  актуальной практики ФАС России.

<b>Перед началом работы важно учитывать следующее:</b>
        1. Бот не связан с Федеральной антимонопольной службой, но использует предоставляемые ею открытые данные.
        2. Если вы связаны обязательствами по соблюдению конфиденциальности, использование бота может являться их нарушением.
        3. Бот анализирует <b>исключительно содержание</b> материала. Он не учитывает фактические обстоятельства его распространения (каналы размещения, лицензирование вашей деятельности и прочее), поэтому заключение бота не является полной юридической консультацией.

Это MVP проекта, поэтому в заключениях могут быть ошибки или преувеличения. Мы работаем над развитием функционала и улучшением качества ответов. Вы можете узнать об ограничениях и их причинах подробнее здесь ⤵️`

const uploadText = `-------------
Отлично!

Отправьте мне:
        • Изображение в формате .jpg или .png или PDF-файл объёмом до 5 страниц. Максимальный размер файла — <b>до 10 МБ</b>.
        • Текст вашего креатива (например, слоган или текст рассылки), вставив его в строку ввода. Не добавляйте комментариев или инструкций (например, «проверь этот слоган») – <b>только сам текст</b>.

Вы можете отправить как что-то одно (только файл или только текст), так и файл с текстом. Пожалуйста, не загружайте контент, нарушающий нормы этики и морали – нейросеть не допустит его к проверке, а ваш доступ к боту будет заблокирован.`

const checkAnotherText = "Отправьте мне изображение, PDF или текст вашего креатива."

const learnMoreTextPart1 = ` <b>Спасибо за ваш интерес к нашему проекту!</b>
Этот бот проверяет рекламные креативы на соответствие ФЗ «О рекламе», опираясь на 700 + свежих (вынесенных за прошедшие 2,5 года) решений ФАС. Он работает по принципу Retrieval‑Augmented Generation (RAG): сначала ищет похожие кейсы, затем формирует ответ, обращаясь к нейросети Gemini 2.5 Pro.

<i>По каким критериям отбирались дела, как это было осуществлено технически, как структурирована база знаний, какие есть планы по ее дальнейшему развитию, и ДА КТО ТАКОЙ ЭТОТ ВАШ РАГ – об этом можно прочесть в <a href="https://t.me/delay_RAG">канале проекта</a>.</i>

<b>Какие задачи решает бот:</b>
        1. проводит предварительную обработку вашего креатива: максимально подробно описывает изображения и подчищает тексты от «шумных» сведений, затрудняющих поиск по базе знаний;
        2. выявляет до <b>5</b> самых вероятных рисков нарушения ФЗ «О рекламе», на которые в своей практике в реальности обращает внимание ФАС;
        3. оценивает их по светофорной шкале «высокий — средний — низкий» и объясняет, в чем состоят риски;
        4. приводит, при наличии, кейсы из практики ФАС по рекламе, чем-то схожей с вашим креативом;
        5. даёт конкретные советы, как доработать креатив.

Текущая версия бота — это тестовый MVP-продукт, который уже неплохо справляется с главными задачами. Но есть некоторые нюансы, над которыми мы уже работаем, чтобы приблизить заключения к ответам опытного юриста по рекламе, который хорошо представляет себе актуальную практику ФАС.

<b>Что бот не умеет:</b>
        1. отвечать на уточняющие вопросы. Любой загруженный материал и введенный текст бот рассматривает как рекламный креатив и будет подвергать его проверке на соответствие ФЗ «О рекламе».
        2. оценивать риски, относимые к каналам распространения. Самый правильный по содержанию креатив, размещенный в интернете без erid или отправленный рассылкой без согласия получателя, <s>обречен</s> может принести вам весточку от ФАС. Если у вас есть какие-либо сомнения, лучше обратиться за консультацией к юристу.
        3. оценивать вероятные размеры штрафов и перспективы оспаривания решения ФАС в суде – база знаний состоит только из решений ФАС, и только в части, касающейся квалификации наличия/отсутствия нарушений.

<b>В чем бот может ошибаться:</b>
        1. оценка риска может оказаться несколько чрезмерной. Действительно высокорискованные моменты бот точно не пропустит, но к рискам, помеченным как «средним» и «низким» в некоторых случаях следует отнестись критично;
        2. известные и существующие похожие кейсы могут быть не упомянуты в заключении из-за технических особенностей реализации процесса retrieval-augmentation, или из-за того, что кейс пока не включен в базу знаний;
        3. иногда бот некорректно оформляет ссылки на дела на сайте ФАС или может сказать, что caseID не найден — обычно при повторной проверке креатива этот момент налаживается. Если отладка не произошла, но вам принципиально узнать, какие кейсы цитировал бот, вы можете связаться с автором проекта через <a href="https://t.me/delay_RAG">Telegram-канал</a>.
        4. иногда бот может допускать ошибки при предварительной обработке креатива (то есть при описании изображения). Если вы явно видите по приведенным цитатам, что этого не было в вашем креативе, можно попробовать отправить креатив на повторную проверку.`

const learnMoreTextPart2 = `<b>О конфиденциальности:</b> поскольку автор проекта является юристом, не могу не предупредить :)
Поскольку проект полностью некоммерческий (скорее имеет исследовательско-экспериментальный характер), а его развитие требует накопления и разметки данных (это основа улучшения работы любых ИИ-продуктов), то условной «платой» за использование бота является то, что мы сохраняем на своем сервере загруженные пользователями материалы и в дальнейшем анализируем по ним ответы нейросети. Это помогает оценить точность данных нейросетью ответов и улучшать промпты и логику работы бота. Авторы проекта не намереваются использовать загруженные материалы каким-либо иным образом: ни передавать их кому-либо, ни тем более публиковать самостоятельно.
Но даже такой подход может быть формальным нарушением ваших обязательств о соблюдении режима конфиденциальности если, например, вы дизайнер, работающий по заказу предпринимателя, и в вашем договоре есть такие условия.
Кроме того, креатив передается для предобработки «в Google», точнее в нейросеть — но риск утечек инпутов из Google, который мог бы каким-либо образом навредить малому бизнесу в России, мы предлагаем считать крайне низким.
Поэтому для полной правомерности использования бота мы рекомендуем пользователям-исполнителям по каким-либо договорам, предусматривающим конфиденциальность креативов, предварительно <b>согласовывать с заказчиком</b> возможность использования бота.

И напоследок немного о <b>пользовательских ограничениях</b>. На данный момент действуют следующие лимиты:
        1. размер загружаемого файла — 10 мб;
        2. форматы загружаемых файлов — JPG, PNG, PDF. В PDF-файле должно быть не более 5 страниц;
        3. файлы в интерфейсе Telegram можно загружать как файлы (но тогда не получится загрузить сделанное на iPhone фото — их стандартный формат HEIC) или как изображения (тогда фото с iPhone пройдет — Telegram сам их конвертирует в нужный формат);
        4. лимит знаков загружаемых текстов соответствует установленному Telegram лимиту для 1 сообщения.

В боте установлена защита от непристойного контента, нарушающего нормы морали и этики. 3 загрузки такого контента подряд или 5 загрузок в общей сложности влекут <b>блокировку</b> и невозможность использовать бот. Если вы уверены в том, что произошла ошибка, и контент ошибочно распознан как непристойный, вы можете связаться с автором проекта через <a href="https://t.me/delay_RAG">Telegram-канал</a>.

В целом приглашаем вас присоединиться к <a href="https://t.me/delay_RAG">каналу</a>! Он может быть интересен юристам, энтузиастам ИИ, и тем, кто интересуется low-code разработкой. Как оказалось, создание даже такого небольшого pet-проекта — весёлый и нюансированный процесс, о котором интересно рассказать.
Мы хотели создать доступный инструмент, который сделает деятельность рекламщиков, юристов и предпринимателей более эффективной, поэтому очень ценим обратную связь, конструктивную критику и предложения о сотрудничестве.`

const (
	ackText             = "Креатив принят в работу, подготовка ответа может занять до 5 минут ⏳"
	useButtonsText      = "Пожалуйста, нажмите на одну из кнопок, чтобы продолжить."
	unsupportedFileText = "Ошибка: поддерживаются только файлы .jpg, .png и .pdf."
	fileTooLargeText    = "Ошибка: размер файла не должен превышать 10 МБ."
	internalErrorText   = "Произошла внутренняя ошибка. Мы уже работаем над ее исправлением. Пожалуйста, попробуйте позже."

	justBlockedText      = "Ваш аккаунт был заблокирован за многократные попытки отправки недопустимого контента."
	violationWarningText = "Вы направили недопустимый запрос. Пожалуйста, убедитесь, что ваш контент соответствует правилам."

	startupText      = "Бот успешно запущен/перезапущен!"
	adminCrashText   = "Авария у пользователя %d!\nОшибка: %v"
	adminBlockedText = "Пользователь %d (@%s) заблокирован."
)

// Feedback survey copy.
const (
	surveyRatingText = "Спасибо за вашу готовность помочь! Ваша обратная связь поможет развитию проекта.\n\n<b>Вопрос 1/4:</b> Оцените, насколько вы согласны с оценкой рисков, предложенной ботом?"
	surveyUsageText  = "<b>Вопрос 2/4:</b> Вы воспользуетесь рекомендациями бота?"

	surveyProfileText   = "<b>Вопрос 3/4:</b> Расскажите немного о себе. Вы..."
	surveyElaborateText = "<b>Вопрос 4/4:</b> Я хочу помочь развитию проекта и подробнее рассказать, в чем я согласен или не согласен с ответом бота."

	surveyElaborateYesText = "Спасибо! Поделитесь вашей оценкой ответа бота, это поможет нам с улучшением его ответов. Просто отправьте текст следующим сообщением."
	surveyThanksText       = "Спасибо за ваши ответы! Они помогут боту стать лучше."
	surveyCommentSavedText = "Ваш подробный отзыв сохранен. Огромное спасибо за помощь!"
	surveyCanceledText     = "Опрос отменен."
	surveyUseButtonsText   = "Пожалуйста, используйте кнопки для ответа на вопрос. Если вы хотите прервать опрос и вернуться в главное меню, отправьте команду /start."

	postSurveyMenuText = "Что вы хотите сделать дальше?"
)
