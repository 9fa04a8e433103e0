package generate

// Prompt templates are fixed per mode; answers are returned raw with no
// post-processing.

const ragContextTemplate = `You are a nutrition and healthy recipe assistant. Use the following information as context to answer the user's question. If the information provided is not relevant or not sufficient to answer the question, state that you do not have enough information.

Nutrition context:
%s
User question:
%s

Answer:`

// ragFallbackTemplate is used verbatim when retrieval produced no context.
// It must never claim that context was used.
const ragFallbackTemplate = `You are a nutrition and healthy recipe assistant. I could not find relevant information for your question.
Question: %s
Is there anything else I can help you with?`

const recipeTemplate = `Create a complete recipe idea using the following ingredients: %s.
Include the recipe name, the full ingredient list (adding common staples where needed), and clear step-by-step instructions.`

const weeklyPlanTemplate = `Create a healthy meal plan for one week (7 days) targeting an average of %s calories per day.
Include breakfast, lunch, dinner, and two snacks. Offer varied, nutritionally balanced meal ideas, structured day by day (e.g. Monday: breakfast, lunch, dinner, snacks).`

const substituteTemplate = `Suggest several healthy alternatives to the ingredient '%s'.
For each alternative, explain why it is healthier and how to use it.`
