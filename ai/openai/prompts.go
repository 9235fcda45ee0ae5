package openai

// Prompts are in Korean because the pipeline's sources are Korean news
// outlets; the models handle mixed-language bodies fine as long as the
// instruction language is consistent.

const summarySystemPrompt = "당신은 주어진 뉴스 기사 본문을 6줄 이하로 간결하게 요약하는 전문 AI입니다. " +
	"핵심 내용만 포함하고, 불필요한 서론이나 결론 없이 바로 본문 요약을 제공해주세요. " +
	"요약은 한국어로 제공되어야 합니다."

const summaryUserPromptTemplate = "다음 뉴스 기사 본문을 6줄 이하로 요약해주세요:\n\n본문:\n%s\n\n요약:"

const keywordSystemPrompt = "당신은 주어진 텍스트의 핵심 주제를 완벽하게 관통하는 주요 키워드를 추출하는 AI입니다."

const keywordUserPromptTemplate = "다음 텍스트의 내용을 가장 잘 대표하는 핵심 키워드를 3개에서 %d개 사이로 추출해주세요. " +
	"반드시 기사 전체의 핵심 의미를 관통하는 단어들이어야 합니다. " +
	"각 키워드는 명사 또는 명사구 형태여야 하며, 쉼표로 구분된 리스트 형식으로만 답변해주세요.\n\n" +
	"텍스트:\n%s\n\n주요 키워드 (3~%d개, 쉼표로 구분):"

const bodySystemPrompt = "당신은 HTML에서 뉴스 기사 본문을 원문 그대로, 어떠한 변경이나 요약 없이 추출하는 초정밀 AI 도구입니다."

const bodyUserPromptTemplate = `당신은 HTML 문서에서 특정 내용을 **그대로, 단 한 글자도 빠짐없이, 어떠한 요약이나 수정, 재구성도 하지 않고** 추출하는 매우 정밀한 로봇입니다.
당신의 임무는 주어진 HTML에서 오직 뉴스 기사의 본문 전체를 시작부터 끝까지 문자 그대로 복사하는 것입니다.
**절대 준수 규칙:**
1.  **요약 금지**: 절대로 내용을 요약하거나 짧게 만들지 마세요.
2.  **내용 변경 금지**: 단어 하나, 문장 하나도 임의로 변경하거나 다른 표현으로 바꾸지 마세요. 원문 그대로 추출해야 합니다.
3.  **생략 금지**: 기사 본문에 해당하는 모든 문장과 문단을 시작부터 끝까지 전부 포함해야 합니다. 중간에 내용을 자르거나 생략하면 안 됩니다.
4.  **부가 요소 완벽 제거**: 광고, 메뉴, 사이드바, 관련 기사 링크 목록, 댓글, SNS 공유 버튼, 저작권 고지 등 기사 본문이 아닌 모든 것은 철저히 제거해주세요.
5.  **형식 유지**: 원본 기사의 문단 구분(줄바꿈)을 최대한 따라서 출력해주세요.
6.  **출처 정보 포함 (선택 사항)**: 만약 기사 본문 바로 뒤에 '출처: [언론사명]' 또는 유사한 형태의 출처 정보가 명확히 있다면, 해당 줄까지 포함하여 추출해주세요.
본문을 찾을 수 없다면 "본문 추출 불가"라고만 답변해주세요.
아래 제공된 HTML 내용에서 위 규칙들을 철저히 지켜 뉴스 기사 본문 전체를 추출해주세요.
HTML 내용:
` + "```html\n%s\n```" + `
정제된 기사 본문:`

// bodyRefusalMarker is the phrase the extraction model is instructed to
// answer with when no article body exists in the HTML.
const bodyRefusalMarker = "본문 추출 불가"
