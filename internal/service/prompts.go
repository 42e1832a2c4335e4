package service

import (
	"fmt"

	"github.com/iconidentify/postcraft/internal/domain"
	"github.com/iconidentify/postcraft/pkg/deepseek"
)

// promptContentChars is how much blog text is embedded in a post prompt.
const promptContentChars = 3000

type postTemplate struct {
	system    string
	maxTokens int
	// body is a fmt format with a single %s for the blog content.
	body string
}

var postTemplates = map[domain.Platform]postTemplate{
	domain.PlatformInstagram: {
		system:    "You are a social media expert who creates engaging Instagram posts from blog content.",
		maxTokens: 1000,
		body: `Create an engaging Instagram post from this blog content.

Requirements:
1. Create a catchy caption (max 2200 characters)
2. Suggest 5-10 relevant hashtags
3. Format it for Instagram (use emojis, line breaks)
4. Keep it conversational and engaging
5. Suggest a visual concept for the post

Blog content: %s

Format your response as JSON:
{
    "caption": "the Instagram caption here",
    "hashtags": ["#hashtag1", "#hashtag2"],
    "image_description": "detailed description of an image that would complement this post"
}`,
	},
	domain.PlatformFacebook: {
		system:    "You are a Facebook marketing expert who creates viral, scroll-stopping posts that drive clicks to blog links. You understand emotional hooks and engagement psychology.",
		maxTokens: 1500,
		body: `Create a scroll-stopping Facebook post from this blog content. The goal is to make people STOP scrolling and CLICK the link to read the full blog.

Use this 5-PART STRUCTURE:

🎯 PART 1 - THE HOOK (1-2 sentences)
A provocative, relatable statement or question that creates instant curiosity. Make them feel seen.

💬 PART 2 - THE BODY (3-5 short paragraphs)
Expand on the hook with emotional, relatable content. Use short paragraphs. Create tension between the easy path and the right path. Make them nod along.

🔗 PART 3 - LINK & CTA (1-2 sentences)
Tease what they'll learn/feel by reading the full blog. End with "Read it here: [Link to blog]"

💭 PART 4 - ENGAGEMENT PROMPT (1 question)
Ask a specific question that invites them to share their experience. Include your own brief answer as an example.

🎨 PART 5 - VISUALS GUIDE (3 options)
Describe 3 visual options: 1) A relatable photo scene, 2) A text graphic with a key quote, 3) A short video concept

Blog content: %s

Format your response as JSON:
{
    "hook": "The attention-grabbing opening",
    "body": "The main emotional content with short paragraphs",
    "cta": "The call-to-action with link placeholder",
    "engagement_prompt": "The question to drive comments",
    "visuals_guide": "The 3 visual options described",
    "full_post": "The complete formatted post ready to copy (Parts 1-4 combined with emojis)",
    "image_description": "The best visual concept for AI image generation"
}`,
	},
	domain.PlatformPinterest: {
		system:    "You are a Pinterest marketing expert who creates viral pin strategies that drive traffic to blogs. You understand Pinterest SEO, visual design principles, and what makes pins get saved and clicked.",
		maxTokens: 2000,
		body: `Analyze this blog content and create a Pinterest pin strategy for maximum engagement.

Create 4-6 pin ideas using different pin types:
- title: Main headline pin with the key message
- list: Numbered key takeaways or tips
- howto: Step-by-step guide format
- quote: Inspiring or thought-provoking quote from content
- statistic: Key data point or finding

For each pin, provide:
- type: The pin type (title, list, howto, quote, statistic)
- focus: What this pin emphasizes
- keyPoints: 3-4 bullet points for the pin content
- callToAction: The CTA text
- pinTitle: The headline text for the pin (max 60 chars)
- pinDescription: Pinterest-optimized description (max 500 chars, keyword-rich)

Also provide:
- summary: Brief blog summary
- keyTopics: 3-5 main topics
- targetAudience: Who this content is for
- pinterestKeywords: 8-10 SEO keywords for Pinterest search
- boardSuggestions: 3 Pinterest board names this would fit

Blog content: %s

Format your response as JSON:
{
    "summary": "Brief summary of the blog",
    "keyTopics": ["topic1", "topic2", "topic3"],
    "targetAudience": "Description of target audience",
    "pinterestKeywords": ["keyword1", "keyword2"],
    "boardSuggestions": ["Board Name 1", "Board Name 2", "Board Name 3"],
    "pinStrategies": [
        {
            "type": "title",
            "focus": "Main message focus",
            "keyPoints": ["point1", "point2", "point3"],
            "callToAction": "Read More →",
            "pinTitle": "Catchy Pin Title",
            "pinDescription": "Pinterest-optimized description with keywords"
        }
    ],
    "image_description": "Visual style recommendation for pin graphics"
}`,
	},
}

// BuildPostRequest returns the completion request for a platform post.
// Unknown platforms get the Instagram template.
func BuildPostRequest(platform domain.Platform, content domain.BlogContent) deepseek.CompletionRequest {
	tmpl, ok := postTemplates[platform]
	if !ok {
		tmpl = postTemplates[domain.PlatformInstagram]
	}
	return deepseek.CompletionRequest{
		System:    tmpl.system,
		User:      fmt.Sprintf(tmpl.body, content.Excerpt(promptContentChars)),
		MaxTokens: tmpl.maxTokens,
	}
}

const (
	imagePromptSystem       = "You create detailed, specific prompts for AI image generators."
	imagePromptMaxTokens    = 500
	imagePromptExcerptChars = 1000

	imagePromptBody = `Based on this blog content and image description, create a detailed prompt for AI image generation.

Blog excerpt: %s

Original image description: %s

Create a detailed prompt that includes:
1. Main subject and composition
2. Style (photorealistic, illustration, digital art, etc.)
3. Color scheme
4. Lighting and mood
5. Additional artistic details

Make the prompt specific and suitable for AI image generation.`
)

// BuildImagePromptRequest asks for a detailed image generation prompt.
func BuildImagePromptRequest(content domain.BlogContent, description string) deepseek.CompletionRequest {
	return deepseek.CompletionRequest{
		System:    imagePromptSystem,
		User:      fmt.Sprintf(imagePromptBody, content.Excerpt(imagePromptExcerptChars), description),
		MaxTokens: imagePromptMaxTokens,
	}
}

const (
	summarySystem     = "You summarize image descriptions into short, simple phrases for AI image generation. Output ONLY the short phrase, nothing else."
	summaryMaxTokens  = 50
	summaryInputChars = 1500

	summaryBody = `Summarize the following image description into ONE short phrase (5-8 words max) that describes the scene simply.

Do NOT include any instructions or meta-text. Just output the short descriptive phrase.

Examples of good output:
- "Cozy living room with warm sunset light"
- "Mountain landscape at golden hour"
- "Modern minimalist workspace"

Image description to summarize:
%s

Short phrase:`
)

// BuildSummaryRequest asks for a 5-8 word phrase describing detailed.
func BuildSummaryRequest(detailed string) deepseek.CompletionRequest {
	return deepseek.CompletionRequest{
		System:    summarySystem,
		User:      fmt.Sprintf(summaryBody, domain.Truncate(detailed, summaryInputChars)),
		MaxTokens: summaryMaxTokens,
	}
}
