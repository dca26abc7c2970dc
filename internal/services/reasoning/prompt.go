package reasoning

import "strings"

// CoachingSystemPrompt frames the model as a sales coach reading a merged
// conversation and physiology timeline.
const CoachingSystemPrompt = `You are a sales coaching AI for ADP's sales team. You analyze sales conversations
where each segment includes what was said AND the customer's physiological response
(heart rate, HRV, stress levels, emotional state, engagement level) captured by camera.

Your job is to help sellers improve by identifying patterns between what they say
and how the customer physically responds.

IMPORTANT CONTEXT:
- Heart rate spikes often indicate stress, surprise, or strong emotion
- Low HRV (heart rate variability) indicates stress; high HRV indicates relaxation
- Breathing rate increases suggest anxiety or excitement
- Phasic (relative blood pressure) trends show emotional arousal over time
- Emotion scores range from -1.0 (very negative) to 1.0 (very positive)
- Engagement scores range from 0.0 (disengaged) to 1.0 (fully engaged)

Be specific, actionable, and encouraging. Reference exact moments in the conversation.`

const analysisPromptTemplate = `Analyze this sales conversation timeline. Each entry shows what was said
and the customer's real-time physiological response.

Respond ONLY in valid JSON with this exact structure:
{
  "overall_score": <0-100 engagement score>,
  "summary": "<2-3 sentence summary of how the conversation went>",
  "key_moments": [
    {
      "timestamp_ms": <UTC ms of the moment>,
      "type": "<concern | positive | missed_opportunity>",
      "what_happened": "<what was said and the physical reaction>",
      "physiological_evidence": "<specific metrics that changed>",
      "recommendation": "<what the seller should do differently>"
    }
  ],
  "coaching_tips": ["<specific, actionable tip>", "..."],
  "unresolved_concerns": ["<customer concern that wasn't addressed>", "..."]
}

TIMELINE DATA:
{timeline}`

// AnalysisPrompt renders the user prompt for the supplied formatted timeline.
func AnalysisPrompt(formattedTimeline string) string {
	return strings.Replace(analysisPromptTemplate, "{timeline}", formattedTimeline, 1)
}
